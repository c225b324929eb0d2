package decl

import "schemac/internal/source"

// QualifiedName is a dot-separated name as written in source, interned
// part by part so lookups never depend on how the identifier was spelled.
type QualifiedName struct {
	Parts []source.StringID
	Span  source.Span
}

// TypeExpr is a type expression as written by the declaration's author: a
// base name plus, for parameterized types such as List(T), nested
// parameters.
type TypeExpr struct {
	Name   QualifiedName
	Params []TypeExpr
	Span   source.Span
}
