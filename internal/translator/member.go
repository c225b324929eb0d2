// Package translator implements the schema node translator: it walks a
// decl.Tree for one top-level declaration, lays out its data and pointer
// sections via internal/layout, compiles types/values/annotations against
// an external resolver.Resolver, and emits a schema.NodeSet.
package translator

import (
	"schemac/internal/decl"
	"schemac/internal/layout"
	"schemac/internal/schema"
)

// MemberID is a 1-based handle into a StructTranslator's MemberInfo arena.
type MemberID uint32

const NoMemberID MemberID = 0

// MemberInfo is one node of the traversal tree built from a struct or
// group's declaration children. It plays one of four
// roles, selected by which of OwnsUnion/OwnsGroup is non-nil:
//
//   - plain field: neither is set; the field allocates directly from
//     EnclosingGroup (or, if InUnion != nil, from EnclosingGroup acting on
//     InUnion's shared locations).
//   - field directly inside a union: OwnsGroup is a synthetic, unemitted
//     single-member group wrapping the field so every union variant is
//     uniformly "a group."
//   - named group: OwnsGroup is set and a schema group node is emitted for
//     it.
//   - named or unnamed union: OwnsUnion is set; for a named union a group
//     node is also emitted (OwnsGroup is then also set, backing that
//     node's own fields, of which there are none beyond the discriminant).
type MemberInfo struct {
	Self    MemberID
	Parent  MemberID
	DeclID  decl.ID
	Kind    decl.Kind
	Name    string

	CodeOrder  uint16
	HasOrdinal bool
	Ordinal    uint16

	EnclosingGroup *layout.Group
	InUnion        *layout.Union

	OwnsUnion *layout.Union
	OwnsGroup *layout.Group

	IsGroup     bool
	IsSynthetic bool
	Emitted     bool
	NodeID      schema.NodeID
	DisplayName string

	Children []MemberID

	// Populated during the ordinal pass for Field members.
	Type    schema.Type
	Offset  uint32
	Default schema.Value
}
