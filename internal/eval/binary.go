package eval

import (
	"math"

	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/environment"
	"github.com/akashmaji946/meteor/internal/value"
)

func (ev *Evaluator) evalBinary(n *ast.BinaryOpExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	if n.Op == ast.OpAssign {
		return ev.evalAssign(n, env)
	}

	lhs, err := ev.eval(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	rhs, err := ev.eval(n.Rhs, env)
	if err != nil {
		return nil, err
	}

	if l, ok := lhs.(value.Number); ok {
		if r, ok := rhs.(value.Number); ok {
			return evalNumberOp(n, l, r)
		}
	}
	if l, ok := lhs.(value.Bool); ok {
		if r, ok := rhs.(value.Bool); ok {
			return evalBoolOp(n, l, r)
		}
	}
	return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "unsupported operation %s between %s and %s", n.Op, lhs.Type(), rhs.Type())
}

func evalNumberOp(n *ast.BinaryOpExpr, l, r value.Number) (value.Value, *RuntimeError) {
	switch n.Op {
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv:
		return l / r, nil // IEEE-754 semantics: division by zero is not an error.
	case ast.OpMod:
		return value.Number(math.Mod(float64(l), float64(r))), nil
	case ast.OpEq:
		return value.Bool(l == r), nil
	case ast.OpNotEq:
		return value.Bool(l != r), nil
	case ast.OpGt:
		return value.Bool(l > r), nil
	case ast.OpGe:
		return value.Bool(l >= r), nil
	case ast.OpLt:
		return value.Bool(l < r), nil
	case ast.OpLe:
		return value.Bool(l <= r), nil
	default:
		return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "operator %s is not defined over numbers", n.Op)
	}
}

func evalBoolOp(n *ast.BinaryOpExpr, l, r value.Bool) (value.Value, *RuntimeError) {
	switch n.Op {
	case ast.OpOr:
		return value.Bool(l || r), nil
	case ast.OpAnd:
		return value.Bool(l && r), nil
	case ast.OpNor:
		return value.Bool(!(l || r)), nil
	case ast.OpXor:
		return value.Bool(l != r), nil
	case ast.OpEq:
		return value.Bool(l == r), nil
	case ast.OpNotEq:
		return value.Bool(l != r), nil
	default:
		return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "operator %s is not defined over booleans", n.Op)
	}
}

// evalAssign implements spec.md §4.5's Assign rule: Ident targets
// store through the environment chain; ArrayIndex targets bounds-check
// and overwrite in place; anything else is UnsupportedOperation.
// Assignment always evaluates to Nil.
func (ev *Evaluator) evalAssign(n *ast.BinaryOpExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	rv, err := ev.eval(n.Rhs, env)
	if err != nil {
		return nil, err
	}

	switch lhs := n.Lhs.(type) {
	case *ast.IdentExpr:
		name := lhs.Name.String()
		bound, ok := env.Retrieve(name)
		if !ok {
			return nil, rerr(diag.KindUnknownVariable, lhs.Span(), "unknown variable %q", name)
		}
		if !bound.Type.Accepts(rv) {
			return nil, rerr(diag.KindMismatchType, n.Span(), "cannot assign %s to %q of type %s", rv.Type(), name, bound.Type)
		}
		env.Store(name, rv)
		return value.Nil{}, nil

	case *ast.ArrayIndexExpr:
		lv, err := ev.eval(lhs.Lhs, env)
		if err != nil {
			return nil, err
		}
		arr, ok := lv.(value.Array)
		if !ok {
			return nil, rerr(diag.KindCannotIndexIntoType, n.Span(), "cannot index into %s", lv.Type())
		}
		iv, err := ev.eval(lhs.Index, env)
		if err != nil {
			return nil, err
		}
		num, ok := iv.(value.Number)
		if !ok {
			return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "array index must be a number, found %s", iv.Type())
		}
		idx := int(math.Floor(float64(num)))
		if !arr.Set(idx, rv) {
			return nil, rerr(diag.KindArrayOutOfBounds, n.Span(), "array index %d out of bounds (length %d)", idx, arr.Len())
		}
		return value.Nil{}, nil

	default:
		return nil, rerr(diag.KindUnsupportedOperation, n.Span(), "left-hand side of assignment must be an identifier or array index")
	}
}

func (ev *Evaluator) evalUnary(n *ast.UnaryOpExpr, env *environment.Environment) (value.Value, *RuntimeError) {
	rhs, err := ev.eval(n.Rhs, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		if num, ok := rhs.(value.Number); ok {
			return -num, nil
		}
	case ast.OpNot:
		if b, ok := rhs.(value.Bool); ok {
			return !b, nil
		}
	}
	return nil, rerr(diag.KindUnsupportedUnaryOperation, n.Span(), "unsupported unary operator %s on %s", n.Op, rhs.Type())
}
