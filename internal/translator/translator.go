package translator

import (
	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
)

// NodeTranslator is the entry point for translating one top-level
// declaration (struct, enum, interface, const, or annotation) given a
// Resolver for the rest of the file. It runs the bootstrap pass
// synchronously in New and exposes the deferred finish pass through
// Finish.
type NodeTranslator struct {
	tree     *decl.Tree
	res      resolver.Resolver
	reporter diag.Reporter
	rootID   schema.NodeID

	kind decl.Kind

	st *StructTranslator // populated for KindStruct only; nil for every other kind

	root   schema.Node
	groups []schema.Node
}

// New runs the bootstrap translation of declID (already allocated node id
// rootID by the caller's id-allocation pass) against res, synchronously.
// compileAnnotations gates whether annotations get compiled at all: when
// false every emitted node's annotation list is left empty.
func New(res resolver.Resolver, reporter diag.Reporter, tree *decl.Tree, declID decl.ID, rootID schema.NodeID, compileAnnotations bool) *NodeTranslator {
	d := tree.Get(declID)
	nt := &NodeTranslator{tree: tree, res: res, reporter: reporter, rootID: rootID, kind: d.Kind}

	switch d.Kind {
	case decl.KindStruct:
		st := newStructTranslator(tree, res, reporter, compileAnnotations)
		nt.st = st
		nt.root, nt.groups = st.TranslateStruct(declID, rootID)
	case decl.KindEnum:
		nt.root = translateEnum(tree, res, reporter, declID, rootID, compileAnnotations)
	case decl.KindInterface:
		nt.root, nt.groups = translateInterface(tree, res, reporter, declID, rootID, compileAnnotations)
	case decl.KindConst:
		nt.root = translateConst(tree, res, reporter, declID, rootID, compileAnnotations)
	case decl.KindAnnotation:
		nt.root = translateAnnotationDecl(tree, res, reporter, declID, rootID, compileAnnotations)
	}
	return nt
}

// BootstrapNodeSet returns the root node and every group sub-node produced
// by the bootstrap pass; pointer-typed defaults are still default-defaults
// at this point.
func (nt *NodeTranslator) BootstrapNodeSet() schema.NodeSet {
	return schema.NodeSet{Root: nt.root, Groups: nt.groups}
}

// Finish drains every deferred composite-value computation against final
// schemas (now resolvable through res) and returns the finished NodeSet.
func (nt *NodeTranslator) Finish() schema.NodeSet {
	if nt.st != nil {
		nt.st.values.Finish()
		// Finish only ever rewrites MemberInfo.Default in place, and the
		// bootstrap pass's schema.Field.Default copies were taken by value
		// before this point, so the already-built tree's copies are stale.
		// Re-derive the node tree to pick up the finished defaults.
		nt.root, nt.groups = nt.st.rebuildAfterFinish()
	}
	return schema.NodeSet{Root: nt.root, Groups: nt.groups}
}
