// Package resolver defines the external lookup contract a translator
// depends on, plus an in-memory reference implementation suitable for
// tests and for the CLI's single-process pipeline.
package resolver

import "schemac/internal/schema"

// Kind tags what a resolved qualified name actually is, so a caller asking
// for a type can reject an accidental match against a constant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindConst
	KindAnnotation
	KindEnum
	KindStruct
	KindInterface
	KindGroup
	KindField
)

// Resolution is the outcome of looking up a qualified name.
type Resolution struct {
	Kind Kind
	ID   schema.NodeID
}

// Resolver is the read-only, deterministic lookup surface a translator
// calls into. Every method may return ok=false; the translator is
// required to tolerate that by substituting a default and continuing.
type Resolver interface {
	// Resolve looks up a qualified name against the resolver's current
	// scope chain.
	Resolve(qualifiedName []string) (Resolution, bool)

	// ResolveBootstrapSchema returns the schema known for id during
	// bootstrap: it may be partial if id's non-primitive defaults have not
	// yet been finished.
	ResolveBootstrapSchema(id schema.NodeID) (schema.Node, bool)

	// ResolveFinalSchema returns the schema for id once every translator
	// in the compilation has finished.
	ResolveFinalSchema(id schema.NodeID) (schema.Node, bool)
}
