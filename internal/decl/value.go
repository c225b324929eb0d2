package decl

import "schemac/internal/source"

// ValueKind tags the syntactic shape of a literal value expression.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	// ValueBareWord covers a bare identifier: an enumerant name, one of the
	// reserved words void/true/false/nan/inf, or an unqualified constant
	// reference.
	ValueBareWord
	ValueQualifiedRef
	ValuePositiveInt
	ValueNegativeInt
	ValueFloat
	ValueString
	ValueList
	ValueStruct
)

// StructFieldLit is one `name: value` assignment inside a struct literal.
type StructFieldLit struct {
	Name  source.StringID
	Value ValueExpr
	Span  source.Span
}

// ValueExpr is a literal value expression as written by the declaration's
// author, prior to being compiled against a target schema type.
type ValueExpr struct {
	Kind ValueKind
	Span source.Span

	Word source.StringID // ValueBareWord
	Ref  QualifiedName   // ValueQualifiedRef

	PositiveInt uint64 // ValuePositiveInt
	NegativeMag uint64 // ValueNegativeInt: magnitude of the literal, e.g. 9223372036854775809
	Float       float64
	Str         string

	Elems []ValueExpr // ValueList

	Fields []StructFieldLit // ValueStruct
	// ObsoleteUnionField marks a struct literal field written with the
	// retired "union field" assignment syntax, so the value compiler can
	// flag it rather than silently accepting it.
	ObsoleteUnionField bool
}
