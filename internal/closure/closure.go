/*
File    : meteor/internal/closure/closure.go

Package closure defines Meteor's Function value: a syntactic Function
(spec.md §3) bundled with a handle to the lexical environment active at
the point of its creation. It lives in its own package, depending on
both value and environment, so that neither of those packages has to
depend on the other — value.Array/Dictionary hold value.Value, and
environment.Environment holds value.Value too, but only closure needs
to hold an *environment.Environment inside a Value, avoiding the import
cycle the reference interpreter sidesteps the same way with its
function package depending on both objects and scope.
*/
package closure

import (
	"fmt"

	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/environment"
	"github.com/akashmaji946/meteor/internal/value"
)

// Closure is a Value::Function: the function's syntax plus a captured
// environment handle. Capturing the handle (not a snapshot) is what
// gives Meteor closures visibility into later mutations of their
// defining scope (spec.md §8's closure-capture property).
type Closure struct {
	Fn  *ast.Function
	Env *environment.Environment
}

// New wraps fn with the environment active at its creation.
func New(fn *ast.Function, env *environment.Environment) Closure {
	return Closure{Fn: fn, Env: env}
}

func (Closure) Type() value.Type { return value.TypeFunc }

// Display renders as `[function]` per spec.md §4.5's Display form.
func (Closure) Display() string { return "[function]" }

func (c Closure) String() string {
	return fmt.Sprintf("<closure %d-param>", len(c.Fn.Params))
}
