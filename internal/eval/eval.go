/*
File    : meteor/internal/eval/eval.go

Package eval implements Meteor's tree-walking evaluator, nicknamed
"Chip" in spec.md §4.5. It is single-threaded, strict, and
expression-oriented: every ast.Expr evaluates to exactly one
value.Value, or the walk stops at the first RuntimeError.
*/
package eval

import (
	"fmt"
	"io"
	"math"

	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/closure"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/environment"
	"github.com/akashmaji946/meteor/internal/source"
	"github.com/akashmaji946/meteor/internal/value"
)

// EntrypointPolicy selects how a Program's result is determined once
// every top-level expression has run (spec.md §4.5 and §9's Open
// Question: "implementations MUST pick one policy and document it").
type EntrypointPolicy int

const (
	// PolicyMainFunction calls a zero-argument top-level `main`
	// function and returns its result; missing or non-function `main`
	// raises InvalidMainFunc. This is the policy spec.md describes
	// first and the one Meteor uses by default (see DESIGN.md).
	PolicyMainFunction EntrypointPolicy = iota
	// PolicyLastExpression returns the last top-level expression's
	// value directly, with no `main` lookup.
	PolicyLastExpression
)

// Evaluator holds the state threaded through one Program evaluation:
// where `print` writes, and which top-level policy to apply.
type Evaluator struct {
	Out    io.Writer
	Policy EntrypointPolicy
}

// New creates an Evaluator writing `print` output to out.
func New(out io.Writer, policy EntrypointPolicy) *Evaluator {
	return &Evaluator{Out: out, Policy: policy}
}

// Run evaluates every top-level expression of prog in order against a
// fresh global environment, then applies the configured entrypoint
// policy (spec.md §4.5's "Top-level execution").
func (ev *Evaluator) Run(prog *ast.Program) (value.Value, *RuntimeError) {
	global := NewGlobalEnv()
	last, err := ev.EvalTopLevel(global, prog.Exprs)
	if err != nil {
		return nil, err
	}

	switch ev.Policy {
	case PolicyLastExpression:
		return last, nil
	default:
		return ev.callMain(global, prog.Span())
	}
}

// NewGlobalEnv creates the top-level environment Run and a REPL session
// evaluate expressions against. It holds no bindings of its own; `print`
// is recognized syntactically by evalCall rather than bound as a value.
func NewGlobalEnv() *environment.Environment {
	return environment.New(nil)
}

// EvalTopLevel evaluates exprs in order against env, returning the last
// value produced (Nil if exprs is empty). A REPL line and a whole
// Program's top level are both just a sequence of expressions run
// against a shared environment, so this is the one path both use.
func (ev *Evaluator) EvalTopLevel(env *environment.Environment, exprs []ast.Expr) (value.Value, *RuntimeError) {
	var last value.Value = value.Nil{}
	for _, e := range exprs {
		v, err := ev.eval(e, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// CallMain looks up and calls the zero-argument `main` function in env,
// exposed for callers that built env via
// EvalTopLevel and now want to apply PolicyMainFunction explicitly.
func (ev *Evaluator) CallMain(env *environment.Environment, at source.Span) (value.Value, *RuntimeError) {
	return ev.callMain(env, at)
}

func (ev *Evaluator) callMain(global *environment.Environment, at source.Span) (value.Value, *RuntimeError) {
	bound, ok := global.Retrieve("main")
	if !ok || bound.Value.Type() != value.TypeFunc {
		return nil, rerr(diag.KindInvalidMainFunc, at, "no zero-argument `main` function is defined")
	}
	cl, ok := bound.Value.(closure.Closure)
	if !ok {
		return nil, rerr(diag.KindInvalidMainFunc, at, "`main` is not callable")
	}
	return ev.callClosure(cl, nil, at)
}

// eval dispatches on the dynamic type of e, threading env down through
// every recursive call (spec.md §4.5's evaluation rules, one case per
// Expr variant).
func (ev *Evaluator) eval(e ast.Expr, env *environment.Environment) (value.Value, *RuntimeError) {
	switch n := e.(type) {
	case *ast.ErrorExpr:
		// Parse-recovery placeholder; the parser already recorded a
		// diagnostic for it. Evaluating it is a no-op.
		return value.Nil{}, nil

	case *ast.NilExpr:
		return value.Nil{}, nil
	case *ast.BoolExpr:
		return value.Bool(n.Value), nil
	case *ast.NumberExpr:
		return value.Number(n.Value), nil
	case *ast.StringExpr:
		return value.String(n.Value), nil

	case *ast.IdentExpr:
		bound, ok := env.Retrieve(n.Name.String())
		if !ok {
			return nil, rerr(diag.KindUnknownVariable, n.Span(), "unknown variable %q", n.Name.String())
		}
		return bound.Value, nil

	case *ast.ArrayExpr:
		items := make([]value.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := ev.eval(el, env)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return value.NewArray(items), nil

	case *ast.DictionaryExpr:
		keys := make([]string, 0, len(n.Entries))
		vals := make([]value.Value, 0, len(n.Entries))
		for _, entry := range n.Entries {
			v, err := ev.eval(entry.Value, env)
			if err != nil {
				return nil, err
			}
			keys = append(keys, entry.Key.String())
			vals = append(vals, v)
		}
		return value.NewDictionary(keys, vals), nil

	case *ast.FuncExpr:
		return closure.New(n.Fn, env), nil

	case *ast.LetExpr:
		return ev.evalLet(n, env)

	case *ast.BlockExpr:
		return ev.evalBlock(n, env)

	case *ast.IfExpr:
		cond, err := ev.eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return ev.eval(n.Then, env)
		}
		return ev.eval(n.OrElse, env)

	case *ast.WhileExpr:
		for {
			cond, err := ev.eval(n.Cond, env)
			if err != nil {
				return nil, err
			}
			if !value.Truthy(cond) {
				return value.Nil{}, nil
			}
			if _, err := ev.eval(n.Then, env); err != nil {
				return nil, err
			}
		}

	case *ast.PropertyAccessExpr:
		return ev.evalPropertyAccess(n, env)

	case *ast.ArrayIndexExpr:
		return ev.evalArrayIndex(n, env)

	case *ast.BinaryOpExpr:
		return ev.evalBinary(n, env)

	case *ast.UnaryOpExpr:
		return ev.evalUnary(n, env)

	case *ast.CallExpr:
		return ev.evalCall(n, env)

	default:
		return nil, rerr(diag.KindUnsupportedOperation, e.Span(), "cannot evaluate %T", e)
	}
}

func (ev *Evaluator) evalLet(n *ast.LetExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	rt, err := resolveType(n.Meta.Type)
	if err != nil {
		return nil, err
	}
	init, err := ev.eval(n.Init, env)
	if err != nil {
		return nil, err
	}
	env.Define(n.Meta.Name.String(), environment.Variable{
		Type:       rt,
		Mutability: mapMutability(n.Meta.Mutability),
		Value:      init,
	})
	return value.Nil{}, nil
}

func mapMutability(m ast.Mutability) environment.Mutability {
	switch m {
	case ast.Constant:
		return environment.Constant
	case ast.DeferInit:
		return environment.DeferInit
	default:
		return environment.Mutable
	}
}

func (ev *Evaluator) evalBlock(n *ast.BlockExpr, outer *environment.Environment) (value.Value, *RuntimeError) {
	if len(n.Exprs) == 0 {
		return value.Nil{}, nil
	}
	inner := environment.New(outer)
	var last value.Value = value.Nil{}
	for _, e := range n.Exprs {
		v, err := ev.eval(e, inner)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) evalPropertyAccess(n *ast.PropertyAccessExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	lhs, err := ev.eval(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	dict, ok := lhs.(value.Dictionary)
	if !ok {
		return nil, rerr(diag.KindInvalidPropertyAccess, n.Span(), "cannot access property %q on %s", n.Property.String(), lhs.Type())
	}
	v, ok := dict.Get(n.Property.String())
	if !ok {
		return value.Nil{}, nil
	}
	return v, nil
}

func (ev *Evaluator) evalArrayIndex(n *ast.ArrayIndexExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	lhs, err := ev.eval(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	arr, ok := lhs.(value.Array)
	if !ok {
		return nil, rerr(diag.KindCannotIndexIntoType, n.Span(), "cannot index into %s", lhs.Type())
	}
	idxVal, err := ev.eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	num, ok := idxVal.(value.Number)
	if !ok {
		return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "array index must be a number, found %s", idxVal.Type())
	}
	idx := int(math.Floor(float64(num)))
	v, ok := arr.Get(idx)
	if !ok {
		return nil, rerr(diag.KindArrayOutOfBounds, n.Span(), "array index %d out of bounds (length %d)", idx, arr.Len())
	}
	return v, nil
}

func (ev *Evaluator) evalCall(n *ast.CallExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	if ident, ok := n.Function.(*ast.IdentExpr); ok && ident.Name.String() == "print" {
		return ev.evalPrint(n, env)
	}
	fn, err := ev.eval(n.Function, env)
	if err != nil {
		return nil, err
	}
	cl, ok := fn.(closure.Closure)
	if !ok {
		return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "cannot call a %s", fn.Type())
	}
	args := make([]value.Value, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		v, err := ev.eval(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return ev.callClosure(cl, args, n.Span())
}

func (ev *Evaluator) evalPrint(n *ast.CallExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	parts := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		v, err := ev.eval(a, env)
		if err != nil {
			return nil, err
		}
		parts = append(parts, v.Display())
	}
	for _, p := range parts {
		fmt.Fprintln(ev.Out, p)
	}
	return value.Nil{}, nil
}

// callClosure invokes cl with args bound to its parameters in a fresh
// scope nested under the closure's captured environment (spec.md
// §4.5's "Calling a closure"). Extra arguments are evaluated but
// ignored; missing ones stay unbound, surfacing as UnknownVariable if
// referenced in the body. A repeated parameter name is first-wins: the
// later duplicate is not added to the function's scope (spec.md §4.3),
// matching the analyzer's DuplicateArgumentName warning.
func (ev *Evaluator) callClosure(cl closure.Closure, args []value.Value, callSpan source.Span) (value.Value, *RuntimeError) {
	callEnv := environment.New(cl.Env)
	bound := make(map[string]bool, len(cl.Fn.Params))
	for i, param := range cl.Fn.Params {
		if i >= len(args) {
			break
		}
		name := param.Name.String()
		if bound[name] {
			continue
		}
		rt, err := resolveType(param.Type)
		if err != nil {
			return nil, err
		}
		callEnv.Define(name, environment.Variable{
			Type:       rt,
			Mutability: mapMutability(param.Mutability),
			Value:      args[i],
		})
		bound[name] = true
	}
	return ev.eval(cl.Fn.Body, callEnv)
}
