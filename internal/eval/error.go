/*
File    : meteor/internal/eval/error.go

RuntimeError is the "or a spanned RuntimeError" half of spec.md §4.5's
evaluator output. It wraps the same diag.Diagnostic record the parser
and analyzer use, at SeverityError, so the CLI can render every phase's
failures uniformly.
*/
package eval

import (
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/source"
)

// RuntimeError is a fail-fast evaluator error: the evaluator stops at
// the first one rather than collecting a list, unlike the parser and
// analyzer's diagnostic slices.
type RuntimeError struct {
	Diagnostic diag.Diagnostic
}

func (e *RuntimeError) Error() string { return e.Diagnostic.Message }

func rerr(kind diag.Kind, span source.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Diagnostic: diag.Error(kind, span, format, args...)}
}
