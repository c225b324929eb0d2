package translator

import (
	"testing"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
	"schemac/internal/testkit"
)

// fieldDecl adds a primitive-typed field declaration as a child of parent
// and returns its ID; ordinal is assigned in the order fields are added.
func fieldDecl(t *decl.Tree, parent decl.ID, name string, ordinal uint16, typeName string) decl.ID {
	id := t.Add(decl.Declaration{
		Kind:       decl.KindField,
		Name:       t.Intern(name),
		HasOrdinal: true,
		Ordinal:    ordinal,
		Type: &decl.TypeExpr{
			Name: decl.QualifiedName{Parts: []source.StringID{t.Intern(typeName)}},
		},
	})
	p := t.Get(parent)
	p.Children = append(p.Children, id)
	return id
}

func newNoopReporter() diag.Reporter {
	return diag.BagReporter{Bag: diag.NewBag(64)}
}

// TestTranslateStructWorkedExample reproduces the hand-traced layout
// sanity check: a struct with fields a(u8) c(u16) d(u32) b(u64), declared
// in that ordinal order, must land at offsets a=0, c=16, d=32, b=64 with
// two data words and no pointers.
func TestTranslateStructWorkedExample(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindStruct, Name: tree.Intern("Example")})
	tree.Root = root

	fieldDecl(tree, root, "a", 0, "uint8")
	fieldDecl(tree, root, "c", 1, "uint16")
	fieldDecl(tree, root, "d", 2, "uint32")
	fieldDecl(tree, root, "b", 3, "uint64")

	res := resolver.NewTable()
	r := resolver.NewScoped(res, schema.NodeID(1))
	reporter := newNoopReporter()

	st := newStructTranslator(tree, r, reporter, false)
	node, groups := st.TranslateStruct(root, schema.NodeID(100))

	if len(groups) != 0 {
		t.Fatalf("expected no group sub-nodes, got %d", len(groups))
	}
	if node.Struct.DataWordCount != 2 {
		t.Fatalf("DataWordCount = %d, want 2", node.Struct.DataWordCount)
	}
	if node.Struct.PointerCount != 0 {
		t.Fatalf("PointerCount = %d, want 0", node.Struct.PointerCount)
	}

	offsets := map[string]uint32{}
	for _, f := range node.Struct.Fields {
		name, _ := tree.Interner.Lookup(f.Name)
		offsets[name] = f.Offset
	}
	want := map[string]uint32{"a": 0, "c": 16, "d": 32, "b": 64}
	for name, wantOffset := range want {
		if offsets[name] != wantOffset {
			t.Errorf("offset of %s = %d, want %d", name, offsets[name], wantOffset)
		}
	}

	if err := testkit.CheckStructBodyInvariants(node.Struct); err != nil {
		t.Errorf("invariant violation: %v", err)
	}
	if err := testkit.CheckFieldsSorted(node.Struct); err != nil {
		t.Errorf("invariant violation: %v", err)
	}
}

// TestTranslateStructVoidStruct covers the empty-struct edge case: zero
// data words, zero pointers, no discriminant.
func TestTranslateStructVoidStruct(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindStruct, Name: tree.Intern("Nothing")})
	tree.Root = root

	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	st := newStructTranslator(tree, r, newNoopReporter(), false)
	node, _ := st.TranslateStruct(root, schema.NodeID(200))

	if node.Struct.DataWordCount != 0 || node.Struct.PointerCount != 0 {
		t.Fatalf("expected zero-sized struct, got %+v", node.Struct)
	}
	if node.Struct.DiscriminantOffset != schema.NoDiscriminantOffset {
		t.Fatalf("expected NoDiscriminantOffset, got %d", node.Struct.DiscriminantOffset)
	}
	if enc := preferredListEncoding(node.Struct, st.top); enc != schema.EncodingEmpty {
		t.Fatalf("preferred encoding = %v, want empty", enc)
	}
}

// TestTranslateStructUnnamedUnionGetsDiscriminant covers an unnamed union
// at the struct root: it has no ordinal of its own for the ordinal pass to
// reach, yet it still allocates a discriminant once finishGroup sweeps for
// it.
func TestTranslateStructUnnamedUnionGetsDiscriminant(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindStruct, Name: tree.Intern("HasUnion")})
	tree.Root = root

	unionID := tree.Add(decl.Declaration{Kind: decl.KindUnion})
	rootDecl := tree.Get(root)
	rootDecl.Children = append(rootDecl.Children, unionID)

	fieldDecl(tree, unionID, "x", 0, "uint16")
	fieldDecl(tree, unionID, "y", 1, "uint16")

	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	st := newStructTranslator(tree, r, newNoopReporter(), false)
	node, _ := st.TranslateStruct(root, schema.NodeID(300))

	if node.Struct.DiscriminantOffset == schema.NoDiscriminantOffset {
		t.Fatalf("expected a discriminant to be allocated for the union")
	}
	if node.Struct.DiscriminantCount != 2 {
		t.Fatalf("DiscriminantCount = %d, want 2", node.Struct.DiscriminantCount)
	}
	if len(node.Struct.Fields) != 2 {
		t.Fatalf("expected 2 fields forwarded from the unnamed union, got %d", len(node.Struct.Fields))
	}
}

// TestTranslateStructUnnamedUnionAssignsDiscriminantsInCodeOrder covers
// the worked example of a union holding a u16, a u32, and a Text: each
// variant's Discriminant must follow its declaration order (0, 1, 2), not
// collide at 0, and a field declared after the union must still land at
// the next dense CodeOrder slot.
func TestTranslateStructUnnamedUnionAssignsDiscriminantsInCodeOrder(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindStruct, Name: tree.Intern("Variant")})
	tree.Root = root

	unionID := tree.Add(decl.Declaration{Kind: decl.KindUnion})
	rootDecl := tree.Get(root)
	rootDecl.Children = append(rootDecl.Children, unionID)

	fieldDecl(tree, unionID, "x", 0, "uint16")
	fieldDecl(tree, unionID, "y", 1, "uint32")
	fieldDecl(tree, unionID, "z", 2, "text")
	fieldDecl(tree, root, "after", 3, "uint8")

	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	st := newStructTranslator(tree, r, newNoopReporter(), false)
	node, _ := st.TranslateStruct(root, schema.NodeID(301))

	discriminants := map[string]uint16{}
	var afterCodeOrder uint16
	for _, f := range node.Struct.Fields {
		name, _ := tree.Interner.Lookup(f.Name)
		if name == "after" {
			afterCodeOrder = f.CodeOrder
			continue
		}
		discriminants[name] = f.Discriminant
	}
	want := map[string]uint16{"x": 0, "y": 1, "z": 2}
	for name, wantDiscriminant := range want {
		if discriminants[name] != wantDiscriminant {
			t.Errorf("discriminant of %s = %d, want %d", name, discriminants[name], wantDiscriminant)
		}
	}
	if afterCodeOrder != 3 {
		t.Errorf("CodeOrder of field declared after the union = %d, want 3", afterCodeOrder)
	}
}

// TestTranslateStructNamedGroupEmitsNode covers a named group: it must
// produce its own group sub-node, reachable by GroupNodeID from the
// parent's field list.
func TestTranslateStructNamedGroupEmitsNode(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindStruct, Name: tree.Intern("Outer")})
	tree.Root = root

	groupID := tree.Add(decl.Declaration{Kind: decl.KindGroup, Name: tree.Intern("inner")})
	rootDecl := tree.Get(root)
	rootDecl.Children = append(rootDecl.Children, groupID)
	fieldDecl(tree, groupID, "z", 0, "uint32")

	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	st := newStructTranslator(tree, r, newNoopReporter(), false)
	node, groups := st.TranslateStruct(root, schema.NodeID(400))

	if len(groups) != 1 {
		t.Fatalf("expected exactly one group sub-node, got %d", len(groups))
	}
	if len(node.Struct.Fields) != 1 || node.Struct.Fields[0].Variant != schema.FieldGroup {
		t.Fatalf("expected a single group-variant field, got %+v", node.Struct.Fields)
	}
	if node.Struct.Fields[0].GroupNodeID != groups[0].ID {
		t.Fatalf("field's GroupNodeID does not match emitted group node id")
	}
	if !groups[0].Struct.IsGroup {
		t.Fatalf("emitted sub-node should have IsGroup set")
	}
	if err := testkit.CheckNodeIDsUnique(schema.NodeSet{Root: node, Groups: groups}); err != nil {
		t.Errorf("invariant violation: %v", err)
	}
}

// TestTranslateStructDuplicateOrdinalReportsOneDiagnostic covers the
// dense-ordinal-sequence rule's duplicate case: two fields sharing
// ordinal 0 must produce exactly one diagnostic, at the later field.
func TestTranslateStructDuplicateOrdinalReportsOneDiagnostic(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindStruct, Name: tree.Intern("Dup")})
	tree.Root = root

	fieldDecl(tree, root, "a", 0, "uint8")
	fieldDecl(tree, root, "b", 0, "uint8")

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	st := newStructTranslator(tree, r, reporter, false)
	st.TranslateStruct(root, schema.NodeID(500))

	found := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DupOrdinal {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected 1 DupOrdinal diagnostic (at the later site), got %d", found)
	}
}
