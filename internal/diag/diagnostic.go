/*
File    : meteor/internal/diag/diagnostic.go

Package diag defines the structured diagnostic record shared by the
parser, the semantic analyzer, and the evaluator. A Diagnostic is never
an exception: every phase collects them into a slice and keeps going
(except the evaluator, which is fail-fast on runtime errors per
spec.md §7) rather than unwinding the call stack.
*/
package diag

import (
	"fmt"

	"github.com/akashmaji946/meteor/internal/source"
)

// Severity ranks how impactful a diagnostic is.
type Severity string

const (
	SeverityHint    Severity = "hint"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Kind is a stable identifier for a diagnostic or runtime error, used by
// golden tests and by property 4 in spec.md §8 (analyzer/evaluator
// UnknownVariable agreement).
type Kind string

const (
	// Parse-phase kinds.
	KindUnexpectedToken Kind = "UnexpectedToken"
	KindUnexpectedEOF   Kind = "UnexpectedEOF"
	KindRecoveredError  Kind = "RecoveredError"

	// Semantic-analysis kinds (spec.md §4.3).
	KindUnknownVariable       Kind = "UnknownVariable"
	KindInvalidTopLevel       Kind = "InvalidTopLevel"
	KindInfiniteLoop          Kind = "InfiniteLoop"
	KindConditionIsConstant   Kind = "ConditionIsConstant"
	KindNegativeArrayIndex    Kind = "NegativeArrayIndex"
	KindFractionalArrayIndex  Kind = "FractionalArrayIndex"
	KindIgnoredOperation      Kind = "IgnoredOperation"
	KindEmptyBlock            Kind = "EmptyBlock"
	KindDuplicateArgumentName Kind = "DuplicateArgumentName"
	KindInvalidInlineExpr     Kind = "InvalidInlineExpression"

	// Runtime kinds (spec.md §7); UnknownVariable is shared with the
	// analyzer above.
	KindUnknownType               Kind = "UnknownType"
	KindInvalidMainFunc           Kind = "InvalidMainFunc"
	KindMismatchType              Kind = "MismatchType"
	KindUnsupportedOperation      Kind = "UnsupportedOperation"
	KindUnsupportedUnaryOperation Kind = "UnsupportedUnaryOperation"
	KindInvalidPropertyAccess     Kind = "InvalidPropertyAccess"
	KindArrayOutOfBounds          Kind = "ArrayOutOfBounds"
	KindCannotIndexIntoType       Kind = "CannotIndexIntoType"
)

// Diagnostic is a structured (severity, kind, span) triple with a
// human-readable message, exactly the record shape spec.md §6 specifies
// for consumption by the CLI and the (out of scope) LSP adapter.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Span     source.Span
}

// New constructs a Diagnostic from a format string, mirroring the
// reference interpreter's CreateError helper but returning a structured
// value instead of a GoMixObject.
func New(severity Severity, kind Kind, span source.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}

func Hint(kind Kind, span source.Span, format string, args ...interface{}) Diagnostic {
	return New(SeverityHint, kind, span, format, args...)
}

func Warning(kind Kind, span source.Span, format string, args ...interface{}) Diagnostic {
	return New(SeverityWarning, kind, span, format, args...)
}

func Error(kind Kind, span source.Span, format string, args ...interface{}) Diagnostic {
	return New(SeverityError, kind, span, format, args...)
}

// HasErrors reports whether any diagnostic in the slice is Error severity.
// The CLI uses this to decide the process exit code per spec.md §7.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
