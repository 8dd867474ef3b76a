package analyzer

import "github.com/akashmaji946/meteor/internal/ast"

// literalTruth reports the statically-known truthiness of e if e is a
// literal (Nil, Bool, Number, String), mirroring value.Truthy's rules
// exactly (spec.md §4.5) so ConditionIsConstant's boolean always agrees
// with the evaluator's truthiness of the same literal.
func literalTruth(e ast.Expr) (truth bool, isLiteral bool) {
	switch n := e.(type) {
	case *ast.NilExpr:
		return false, true
	case *ast.BoolExpr:
		return n.Value, true
	case *ast.NumberExpr:
		return n.Value != 0, true
	case *ast.StringExpr:
		return len(n.Value) > 0, true
	default:
		return false, false
	}
}
