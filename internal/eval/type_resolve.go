package eval

import (
	"strings"

	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/diag"
	"github.com/akashmaji946/meteor/internal/value"
)

// resolveType implements spec.md §4.5's annotation -> RuntimeType table.
// A nil TypeExpr (no annotation) resolves to value.Any. Generic
// annotations and any name outside the fixed table raise UnknownType:
// the `User(name, params)` RuntimeType spec.md §3 reserves is not
// produced by this resolver since nothing in the language can satisfy
// it yet.
func resolveType(te ast.TypeExpr) (value.RuntimeType, *RuntimeError) {
	if te == nil {
		return value.Any, nil
	}
	switch t := te.(type) {
	case *ast.NamedType:
		switch strings.ToLower(t.Name.String()) {
		case "int", "float", "number":
			return value.NumberType, nil
		case "bool":
			return value.BoolType, nil
		case "str":
			return value.StringType, nil
		case "nil":
			return value.NilType, nil
		case "any":
			return value.Any, nil
		case "dict":
			return value.DictType{Key: value.Any, Value: value.Any}, nil
		case "array":
			return value.ArrayType{Elem: value.Any}, nil
		default:
			return nil, rerr(diag.KindUnknownType, t.Span(), "unknown type %q", t.Name.String())
		}
	case *ast.GenericType:
		return nil, rerr(diag.KindUnknownType, t.Span(), "generic type annotations are not yet supported")
	default:
		return nil, rerr(diag.KindUnknownType, te.Span(), "unresolvable type annotation")
	}
}
