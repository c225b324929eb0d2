package decl

import "schemac/internal/source"

// AnnotationApplication attaches an annotation reference and an optional
// value to the declaration it's attached to.
type AnnotationApplication struct {
	Name  QualifiedName
	Value *ValueExpr // nil when the application carries no value
	Span  source.Span
}

// Declaration is one node of the input declaration tree: a file, struct,
// field, union, group, enum, enumerant, interface, method, const,
// annotation, or using. Anonymous nodes (Name == source.NoStringID) are
// legal for unions and for a struct's top-level group.
type Declaration struct {
	Kind Kind
	Span source.Span
	Name source.StringID

	HasOrdinal bool
	Ordinal    uint16

	// Children holds nested declarations in declaration (code) order:
	// fields/unions/groups/consts/usings inside a struct; enumerants inside
	// an enum; methods/consts/usings inside an interface.
	Children []ID

	// Type is the declared type expression, present on Field, Const, Using,
	// and on Method parameter/result pseudo-fields.
	Type *TypeExpr

	// Value is the literal default, present on Field and Const.
	Value *ValueExpr

	Annotations []AnnotationApplication

	// Targets lists the declaration kinds this annotation may legally be
	// applied to; meaningful only when Kind == KindAnnotation.
	Targets []Kind
}
