/*
File    : meteor/internal/analyzer/analyzer.go

Package analyzer implements Meteor's semantic analyzer (spec.md §4.3):
a two-context walk over a Program that threads statement-vs-expression
position explicitly rather than inferring it from AST shape, collects
diagnostics, and never mutates the tree it walks.
*/
package analyzer

import (
	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/source"
)

// context is the analyzer's notion of where an expression sits.
type context int

const (
	// ctxTopLevel is a top-level Program expression: only Let and Func
	// literals are expected here (spec.md's InvalidTopLevel rule).
	ctxTopLevel context = iota
	// ctxStatement is a non-last position inside a Block: bare
	// no-effect expressions are flagged (IgnoredOperation).
	ctxStatement
	// ctxExpression is any position whose value is actually used: Let
	// and While are illegal here (InvalidInlineExpression).
	ctxExpression
)

// Analyzer walks a Program accumulating diagnostics.
type Analyzer struct {
	diags []diag.Diagnostic
}

// New creates an Analyzer with a fresh diagnostic list.
func New() *Analyzer {
	return &Analyzer{}
}

// builtinScope seeds the root scope with the analyzer's built-in names
// (spec.md §4.3: "A built-in scope provides the name print").
func builtinScope() *scope {
	root := newScope(nil)
	root.define("print", source.Span{})
	return root
}

// Analyze runs the two-context walk over prog and returns every
// diagnostic collected, in the order encountered.
func Analyze(prog *ast.Program) []diag.Diagnostic {
	a := New()
	root := builtinScope()
	for _, e := range prog.Exprs {
		a.walk(e, root, ctxTopLevel)
	}
	return a.diags
}

func (a *Analyzer) emit(d diag.Diagnostic) {
	a.diags = append(a.diags, d)
}

// walk dispatches on the dynamic type of e and recurses into its
// children at the appropriate child context, applying the diagnostic
// that belongs to ctx itself where relevant.
func (a *Analyzer) walk(e ast.Expr, sc *scope, ctx context) {
	switch n := e.(type) {
	case *ast.ErrorExpr, *ast.NilExpr, *ast.BoolExpr, *ast.NumberExpr, *ast.StringExpr:
		a.flagNoEffect(e, ctx)

	case *ast.IdentExpr:
		if _, ok := sc.resolve(n.Name.String()); !ok {
			a.emit(diag.Error(diag.KindUnknownVariable, n.Span(), "unknown variable %q", n.Name.String()))
		}
		a.flagNoEffect(e, ctx)

	case *ast.ArrayExpr:
		for _, el := range n.Elements {
			a.walk(el, sc, ctxExpression)
		}
		a.flagNoEffect(e, ctx)

	case *ast.DictionaryExpr:
		for _, entry := range n.Entries {
			a.walk(entry.Value, sc, ctxExpression)
		}
		a.flagNoEffect(e, ctx)

	case *ast.FuncExpr:
		a.walkFunction(n.Fn, sc)

	case *ast.LetExpr:
		if ctx == ctxExpression {
			a.emit(diag.Warning(diag.KindInvalidInlineExpr, n.Span(), "let is not allowed in expression position"))
		}
		a.walk(n.Init, sc, ctxExpression)
		sc.define(n.Meta.Name.String(), n.Meta.Name.Span())

	case *ast.BlockExpr:
		a.walkBlock(n, sc)

	case *ast.IfExpr:
		a.walk(n.Cond, sc, ctxExpression)
		if b, ok := literalTruth(n.Cond); ok {
			a.emit(diag.Hint(diag.KindConditionIsConstant, n.Cond.Span(), "condition is always %t", b))
		}
		a.walk(n.Then, sc, ctxExpression)
		a.walk(n.OrElse, sc, ctxExpression)

	case *ast.WhileExpr:
		if ctx == ctxExpression {
			a.emit(diag.Warning(diag.KindInvalidInlineExpr, n.Span(), "while is not allowed in expression position"))
		}
		a.walk(n.Cond, sc, ctxExpression)
		if b, cond := literalTruth(n.Cond); cond && b {
			a.emit(diag.Warning(diag.KindInfiniteLoop, n.Span(), "condition is always true"))
		} else if cond {
			a.emit(diag.Hint(diag.KindConditionIsConstant, n.Cond.Span(), "condition is always %t", b))
		}
		a.walk(n.Then, sc, ctxExpression)

	case *ast.PropertyAccessExpr:
		a.walk(n.Lhs, sc, ctxExpression)
		a.flagNoEffect(e, ctx)

	case *ast.ArrayIndexExpr:
		a.walk(n.Lhs, sc, ctxExpression)
		a.walk(n.Index, sc, ctxExpression)
		// The lexer never folds a sign into a number literal, so `-1` arrives
		// here as a negation of a NumberExpr.
		idx, isLit := 0.0, false
		switch ix := n.Index.(type) {
		case *ast.NumberExpr:
			idx, isLit = ix.Value, true
		case *ast.UnaryOpExpr:
			if num, ok := ix.Rhs.(*ast.NumberExpr); ok && ix.Op == ast.OpNeg {
				idx, isLit = -num.Value, true
			}
		}
		if isLit {
			if idx < 0 {
				a.emit(diag.Warning(diag.KindNegativeArrayIndex, n.Index.Span(), "array index %v is negative", idx))
			} else if idx != float64(int64(idx)) {
				a.emit(diag.Warning(diag.KindFractionalArrayIndex, n.Index.Span(), "array index %v is not an integer", idx))
			}
		}
		a.flagNoEffect(e, ctx)

	case *ast.BinaryOpExpr:
		a.walk(n.Lhs, sc, ctxExpression)
		a.walk(n.Rhs, sc, ctxExpression)
		if n.Op != ast.OpAssign {
			a.flagNoEffect(e, ctx)
		}
		// Assignment is never flagged as no-effect: it is not a bare
		// "ignored" expression (spec.md §9).

	case *ast.UnaryOpExpr:
		a.walk(n.Rhs, sc, ctxExpression)
		a.flagNoEffect(e, ctx)

	case *ast.CallExpr:
		a.walk(n.Function, sc, ctxExpression)
		for _, arg := range n.Arguments {
			a.walk(arg, sc, ctxExpression)
		}
		// Calls may have side effects; never flagged as no-effect.

	default:
		// Unreached for any Expr produced by the parser.
	}

	if ctx == ctxTopLevel {
		a.checkTopLevel(e)
	}
}

// checkTopLevel flags a top-level expression that is not a Let or a
// Func literal (spec.md's InvalidTopLevel rule).
func (a *Analyzer) checkTopLevel(e ast.Expr) {
	switch e.(type) {
	case *ast.LetExpr, *ast.FuncExpr:
		return
	}
	a.emit(diag.Warning(diag.KindInvalidTopLevel, e.Span(), "top-level expression has no effect outside let or func"))
}

// flagNoEffect emits IgnoredOperation when e sits in block-statement
// context and its value is discarded with no observable effect.
func (a *Analyzer) flagNoEffect(e ast.Expr, ctx context) {
	if ctx != ctxStatement {
		return
	}
	a.emit(diag.Warning(diag.KindIgnoredOperation, e.Span(), "result of this expression is ignored"))
}

// walkBlock pushes a fresh scope, analyzes every expression but the
// last in statement context, and the last in expression context
// (spec.md §4.3's scoping rule).
func (a *Analyzer) walkBlock(n *ast.BlockExpr, parent *scope) {
	if len(n.Exprs) == 0 {
		a.emit(diag.Warning(diag.KindEmptyBlock, n.Span(), "block has no expressions"))
		return
	}
	inner := newScope(parent)
	last := len(n.Exprs) - 1
	for i, e := range n.Exprs {
		if i == last {
			a.walk(e, inner, ctxExpression)
		} else {
			a.walk(e, inner, ctxStatement)
		}
	}
}

// walkFunction introduces a scope holding the function's parameters
// (duplicates flagged and not rebound), nested under parent so a
// function body can resolve names from its lexically enclosing lets,
// and analyzes the body in expression context within it.
func (a *Analyzer) walkFunction(fn *ast.Function, parent *scope) {
	inner := newScope(parent)
	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		name := p.Name.String()
		if seen[name] {
			a.emit(diag.Warning(diag.KindDuplicateArgumentName, p.Name.Span(), "duplicate parameter name %q", name))
			continue
		}
		seen[name] = true
		inner.define(name, p.Name.Span())
	}
	a.walk(fn.Body, inner, ctxExpression)
}
