package value

import "fmt"

// RuntimeType is the advisory, purely-dynamic type annotation described
// in spec.md §3/§4.5. It gates `store` mismatches; it never drives
// static inference, per spec.md's Non-goals.
type RuntimeType interface {
	// Accepts reports whether v is compatible with this RuntimeType,
	// with Any matching every value.
	Accepts(v Value) bool
	String() string
}

type anyType struct{}

func (anyType) Accepts(Value) bool { return true }
func (anyType) String() string     { return "any" }

// Any is the universal RuntimeType: it matches all values, used both as
// the default annotation and as the subtype every other RuntimeType
// accepts assignments from in `store` (spec.md §4.5).
var Any RuntimeType = anyType{}

type scalarType struct {
	name string
	tag  Type
}

func (s scalarType) Accepts(v Value) bool { return v.Type() == s.tag }
func (s scalarType) String() string       { return s.name }

var (
	StringType = scalarType{name: "string", tag: TypeString}
	BoolType   = scalarType{name: "bool", tag: TypeBool}
	NumberType = scalarType{name: "number", tag: TypeNumber}
	NilType    = scalarType{name: "nil", tag: TypeNil}
)

// ArrayType matches any Array value; spec.md leaves element-type
// checking advisory only ("Type (annotation)... purely syntactic"), so
// Elem is retained for display but not enforced on Accepts.
type ArrayType struct{ Elem RuntimeType }

func (ArrayType) Accepts(v Value) bool { return v.Type() == TypeArray }
func (a ArrayType) String() string     { return fmt.Sprintf("array<%s>", a.Elem) }

// DictType matches any Dictionary value; Key/Value are advisory only,
// mirroring ArrayType.
type DictType struct {
	Key   RuntimeType
	Value RuntimeType
}

func (DictType) Accepts(v Value) bool { return v.Type() == TypeDict }
func (d DictType) String() string     { return fmt.Sprintf("dict<%s, %s>", d.Key, d.Value) }

// FuncType matches any Function value.
type FuncType struct{}

func (FuncType) Accepts(v Value) bool { return v.Type() == TypeFunc }
func (FuncType) String() string       { return "func" }

// UserType is a named, unresolved type annotation (spec.md §3's
// Runtime Type `User(name, params)`); resolving an annotation to one
// always fails per spec.md §4.5 ("otherwise UnknownType"), but the
// value is retained for diagnostics.
type UserType struct {
	Name   string
	Params []RuntimeType
}

func (UserType) Accepts(Value) bool { return false }
func (u UserType) String() string   { return u.Name }
