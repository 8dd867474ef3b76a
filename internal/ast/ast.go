/*
File    : meteor/internal/ast/ast.go

Package ast defines the Meteor abstract syntax tree described in
spec.md §3. Every node carries a Span; spec.md's span-containment
property (§8.2) requires that a composite node's span cover every one
of its children's spans, which the parser enforces when it constructs
these nodes.
*/
package ast

import (
	"github.com/akashmaji946/meteor/internal/ident"
	"github.com/akashmaji946/meteor/internal/source"
)

// Node is any AST node with an associated source span.
type Node interface {
	Span() source.Span
}

// Expr is the tagged-variant expression interface. Every case in
// spec.md §3's Expression enumeration (Error, Nil, Ident, String, Bool,
// Number, Array, Dictionary, Func, Let, Block, If, While, PropertyAccess,
// ArrayIndex, BinaryOp, UnaryOp, Call) implements it.
type Expr interface {
	Node
	exprNode()
}

// Program is the ordered list of spanned directives plus the ordered
// list of spanned top-level expressions (spec.md §3).
type Program struct {
	Directives []*Directive
	Exprs      []Expr
	span       source.Span
}

func NewProgram(directives []*Directive, exprs []Expr, span source.Span) *Program {
	return &Program{Directives: directives, Exprs: exprs, span: span}
}

func (p *Program) Span() source.Span { return p.span }

// Directive is `@name` with an optional (currently always empty)
// argument list, retained for future metadata per spec.md §3.
type Directive struct {
	Name Identifier
	Args []Expr
	span source.Span
}

func NewDirective(name Identifier, args []Expr, span source.Span) *Directive {
	return &Directive{Name: name, Args: args, span: span}
}

func (d *Directive) Span() source.Span { return d.span }

// Identifier wraps an interned name with the span of its occurrence;
// ident.Identifier itself carries no location.
type Identifier struct {
	Name ident.Identifier
	span source.Span
}

func NewIdentifier(name string, span source.Span) Identifier {
	return Identifier{Name: ident.Intern(name), span: span}
}

func (i Identifier) Span() source.Span { return i.span }
func (i Identifier) String() string    { return i.Name.String() }

// Mutability is the declared mutability of a VariableMeta binding.
type Mutability int

const (
	Constant Mutability = iota
	Mutable
	DeferInit
)

// TypeExpr is a syntactic type annotation: either Named(identifier) or
// Generic(base, parameters).
type TypeExpr interface {
	Node
	typeNode()
}

type NamedType struct {
	Name Identifier
	span source.Span
}

func NewNamedType(name Identifier, span source.Span) *NamedType {
	return &NamedType{Name: name, span: span}
}
func (t *NamedType) Span() source.Span { return t.span }
func (*NamedType) typeNode()           {}

type GenericType struct {
	Base   Identifier
	Params []TypeExpr
	span   source.Span
}

func NewGenericType(base Identifier, params []TypeExpr, span source.Span) *GenericType {
	return &GenericType{Base: base, Params: params, span: span}
}
func (t *GenericType) Span() source.Span { return t.span }
func (*GenericType) typeNode()           {}

// VariableMeta is an identifier with an optional type annotation and a
// mutability marker (spec.md §3).
type VariableMeta struct {
	Name       Identifier
	Type       TypeExpr // nil if absent
	Mutability Mutability
	span       source.Span
}

func NewVariableMeta(name Identifier, typ TypeExpr, mut Mutability, span source.Span) VariableMeta {
	return VariableMeta{Name: name, Type: typ, Mutability: mut, span: span}
}

func (v VariableMeta) Span() source.Span { return v.span }

// Function is the syntactic shape of a lambda: an ordered parameter
// list plus a spanned body expression (spec.md §3).
type Function struct {
	Params []VariableMeta
	Body   Expr
	span   source.Span
}

func NewFunction(params []VariableMeta, body Expr, span source.Span) *Function {
	return &Function{Params: params, Body: body, span: span}
}

func (f *Function) Span() source.Span { return f.span }

// DictEntry is one (identifier, expr) pair of a Dictionary literal,
// kept in insertion order.
type DictEntry struct {
	Key   Identifier
	Value Expr
}
