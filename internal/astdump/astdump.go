/*
File    : meteor/internal/astdump/astdump.go

Package astdump renders a parsed Program as deterministic JSON, for the
CLI's --dump-ast flag (SPEC_FULL.md §2.4). It is a read-only view over
internal/ast: every expression, directive, type and function node
becomes a {"kind": ..., "span": [start, end]} object plus whatever
fields that node carries (parameter/let metadata and dictionary entries
are plain objects without kind or span), so the same program always
dumps to byte-identical output.
*/
package astdump

import (
	"encoding/json"

	"github.com/akashmaji946/meteor/internal/ast"
	"github.com/akashmaji946/meteor/internal/source"
)

// Dump renders prog as an indented JSON document.
func Dump(prog *ast.Program) ([]byte, error) {
	return json.MarshalIndent(program(prog), "", "  ")
}

func span(s source.Span) [2]int {
	start, end := s.Range()
	return [2]int{start, end}
}

func program(p *ast.Program) map[string]interface{} {
	directives := make([]map[string]interface{}, 0, len(p.Directives))
	for _, d := range p.Directives {
		directives = append(directives, directive(d))
	}
	exprs := make([]interface{}, 0, len(p.Exprs))
	for _, e := range p.Exprs {
		exprs = append(exprs, expr(e))
	}
	return map[string]interface{}{
		"kind":       "Program",
		"span":       span(p.Span()),
		"directives": directives,
		"exprs":      exprs,
	}
}

func directive(d *ast.Directive) map[string]interface{} {
	args := make([]interface{}, 0, len(d.Args))
	for _, a := range d.Args {
		args = append(args, expr(a))
	}
	return map[string]interface{}{
		"kind": "Directive",
		"span": span(d.Span()),
		"name": d.Name.String(),
		"args": args,
	}
}

func variableMeta(v ast.VariableMeta) map[string]interface{} {
	m := map[string]interface{}{
		"name":       v.Name.String(),
		"mutability": mutability(v.Mutability),
	}
	if v.Type != nil {
		m["type"] = typeExpr(v.Type)
	}
	return m
}

func mutability(m ast.Mutability) string {
	switch m {
	case ast.Mutable:
		return "mutable"
	case ast.DeferInit:
		return "defer-init"
	default:
		return "constant"
	}
}

func typeExpr(t ast.TypeExpr) map[string]interface{} {
	switch n := t.(type) {
	case *ast.NamedType:
		return map[string]interface{}{
			"kind": "NamedType",
			"span": span(n.Span()),
			"name": n.Name.String(),
		}
	case *ast.GenericType:
		params := make([]interface{}, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, typeExpr(p))
		}
		return map[string]interface{}{
			"kind":   "GenericType",
			"span":   span(n.Span()),
			"base":   n.Base.String(),
			"params": params,
		}
	default:
		return map[string]interface{}{"kind": "UnknownType"}
	}
}

func function(fn *ast.Function) map[string]interface{} {
	params := make([]interface{}, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, variableMeta(p))
	}
	return map[string]interface{}{
		"kind":   "Function",
		"span":   span(fn.Span()),
		"params": params,
		"body":   expr(fn.Body),
	}
}

// expr renders one ast.Expr node. One case per variant in
// internal/ast/expr.go; unknown variants fall back to a bare kind/span
// object rather than panicking, so a future Expr addition degrades
// gracefully in dumps instead of crashing the CLI.
func expr(e ast.Expr) map[string]interface{} {
	switch n := e.(type) {
	case *ast.ErrorExpr:
		return map[string]interface{}{"kind": "Error", "span": span(n.Span())}

	case *ast.NilExpr:
		return map[string]interface{}{"kind": "Nil", "span": span(n.Span())}

	case *ast.IdentExpr:
		return map[string]interface{}{"kind": "Ident", "span": span(n.Span()), "name": n.Name.String()}

	case *ast.StringExpr:
		return map[string]interface{}{"kind": "String", "span": span(n.Span()), "value": n.Value}

	case *ast.BoolExpr:
		return map[string]interface{}{"kind": "Bool", "span": span(n.Span()), "value": n.Value}

	case *ast.NumberExpr:
		return map[string]interface{}{"kind": "Number", "span": span(n.Span()), "value": n.Value}

	case *ast.ArrayExpr:
		elems := make([]interface{}, 0, len(n.Elements))
		for _, el := range n.Elements {
			elems = append(elems, expr(el))
		}
		return map[string]interface{}{"kind": "Array", "span": span(n.Span()), "elements": elems}

	case *ast.DictionaryExpr:
		entries := make([]interface{}, 0, len(n.Entries))
		for _, e := range n.Entries {
			entries = append(entries, map[string]interface{}{
				"key":   e.Key.String(),
				"value": expr(e.Value),
			})
		}
		return map[string]interface{}{"kind": "Dictionary", "span": span(n.Span()), "entries": entries}

	case *ast.FuncExpr:
		return map[string]interface{}{"kind": "Func", "span": span(n.Span()), "fn": function(n.Fn)}

	case *ast.LetExpr:
		return map[string]interface{}{
			"kind": "Let",
			"span": span(n.Span()),
			"meta": variableMeta(n.Meta),
			"init": expr(n.Init),
		}

	case *ast.BlockExpr:
		exprs := make([]interface{}, 0, len(n.Exprs))
		for _, e := range n.Exprs {
			exprs = append(exprs, expr(e))
		}
		return map[string]interface{}{"kind": "Block", "span": span(n.Span()), "exprs": exprs}

	case *ast.IfExpr:
		return map[string]interface{}{
			"kind":   "If",
			"span":   span(n.Span()),
			"cond":   expr(n.Cond),
			"then":   expr(n.Then),
			"orElse": expr(n.OrElse),
		}

	case *ast.WhileExpr:
		return map[string]interface{}{
			"kind": "While",
			"span": span(n.Span()),
			"cond": expr(n.Cond),
			"then": expr(n.Then),
		}

	case *ast.PropertyAccessExpr:
		return map[string]interface{}{
			"kind":     "PropertyAccess",
			"span":     span(n.Span()),
			"lhs":      expr(n.Lhs),
			"property": n.Property.String(),
		}

	case *ast.ArrayIndexExpr:
		return map[string]interface{}{
			"kind":  "ArrayIndex",
			"span":  span(n.Span()),
			"lhs":   expr(n.Lhs),
			"index": expr(n.Index),
		}

	case *ast.BinaryOpExpr:
		return map[string]interface{}{
			"kind": "BinaryOp",
			"span": span(n.Span()),
			"op":   string(n.Op),
			"lhs":  expr(n.Lhs),
			"rhs":  expr(n.Rhs),
		}

	case *ast.UnaryOpExpr:
		return map[string]interface{}{
			"kind": "UnaryOp",
			"span": span(n.Span()),
			"op":   string(n.Op),
			"rhs":  expr(n.Rhs),
		}

	case *ast.CallExpr:
		args := make([]interface{}, 0, len(n.Arguments))
		for _, a := range n.Arguments {
			args = append(args, expr(a))
		}
		return map[string]interface{}{
			"kind":      "Call",
			"span":      span(n.Span()),
			"function":  expr(n.Function),
			"arguments": args,
		}

	default:
		return map[string]interface{}{"kind": "Unknown", "span": span(e.Span())}
	}
}
