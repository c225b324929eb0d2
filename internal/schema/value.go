package schema

import "schemac/internal/source"

// FieldValue is one `name = value` slot of a compiled struct literal.
type FieldValue struct {
	Name  source.StringID
	Value Value
}

// StructValue is a compiled struct-literal default.
type StructValue struct {
	NodeID NodeID
	Fields []FieldValue
}

// Value is a tagged union with one case per Type kind. Composite cases
// (List/Struct/AnyPointer, and Interface which has no literal form) are
// filled with a default-default during bootstrap and may carry
// IsObject=true until finish() re-types them against the declared target.
type Value struct {
	Kind TypeKind

	Bool      bool
	Int       int64
	UInt      uint64
	Float64   float64
	Text      string
	Data      []byte
	Enumerant uint16

	List   []Value
	Struct *StructValue

	// IsObject marks a composite value still carrying its bootstrap
	// default rather than its finished, re-typed value.
	IsObject bool
}

// DefaultDefault returns the zero/null-equivalent value for kind, used so
// that every field occupies a well-formed value even when compilation
// fails and falls back to a default.
func DefaultDefault(t Type) Value {
	v := Value{Kind: t.Kind}
	switch t.Kind {
	case List:
		v.List = nil
		v.IsObject = true
	case Struct:
		v.Struct = &StructValue{NodeID: t.NodeID}
		v.IsObject = true
	case AnyPointer:
		v.IsObject = true
	}
	return v
}
