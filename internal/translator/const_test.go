package translator

import (
	"testing"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
)

// enumerantDecl adds an enumerant declaration as a child of parent and
// returns its ID.
func enumerantDecl(t *decl.Tree, parent decl.ID, name string, ordinal uint16) decl.ID {
	id := t.Add(decl.Declaration{
		Kind:       decl.KindEnumerant,
		Name:       t.Intern(name),
		HasOrdinal: true,
		Ordinal:    ordinal,
	})
	p := t.Get(parent)
	p.Children = append(p.Children, id)
	return id
}

// TestTranslateEnumEmitsInOrdinalOrder covers an enum declared out of
// ordinal order: the emitted Enumerants list must be sorted by ordinal,
// while each entry still carries its own declaration position as
// CodeOrder.
func TestTranslateEnumEmitsInOrdinalOrder(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindEnum, Name: tree.Intern("Color")})
	tree.Root = root

	enumerantDecl(tree, root, "blue", 2)
	enumerantDecl(tree, root, "red", 0)
	enumerantDecl(tree, root, "green", 1)

	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	node := translateEnum(tree, r, newNoopReporter(), root, schema.NodeID(200), false)

	want := []string{"red", "green", "blue"}
	if len(node.Enum.Enumerants) != len(want) {
		t.Fatalf("got %d enumerants, want %d", len(node.Enum.Enumerants), len(want))
	}
	for i, e := range node.Enum.Enumerants {
		name, _ := tree.Interner.Lookup(e.Name)
		if name != want[i] {
			t.Errorf("enumerant %d = %s, want %s", i, name, want[i])
		}
		if e.Ordinal != uint16(i) {
			t.Errorf("enumerant %s ordinal = %d, want %d", name, e.Ordinal, i)
		}
	}
	// "blue" was declared first, so it keeps CodeOrder 0 even though it
	// sorts last by ordinal.
	if node.Enum.Enumerants[2].CodeOrder != 0 {
		t.Errorf("blue's CodeOrder = %d, want 0 (declared first)", node.Enum.Enumerants[2].CodeOrder)
	}
}

// TestTranslateEnumSkippedOrdinalReported covers the gap-detection rule:
// an enum whose ordinals jump from 0 straight to 2 must report a skipped
// ordinal.
func TestTranslateEnumSkippedOrdinalReported(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindEnum, Name: tree.Intern("Sparse")})
	tree.Root = root

	enumerantDecl(tree, root, "a", 0)
	enumerantDecl(tree, root, "b", 2)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	translateEnum(tree, r, reporter, root, schema.NodeID(201), false)

	found := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DupOrdinalSkipped {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected 1 DupOrdinalSkipped diagnostic, got %d", found)
	}
}

// TestTranslateEnumDuplicateOrdinalReported covers the duplicate-ordinal
// rule: two enumerants sharing ordinal 0 must produce exactly one
// diagnostic, at the later declaration.
func TestTranslateEnumDuplicateOrdinalReported(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindEnum, Name: tree.Intern("Dup")})
	tree.Root = root

	enumerantDecl(tree, root, "a", 0)
	enumerantDecl(tree, root, "b", 0)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	node := translateEnum(tree, r, reporter, root, schema.NodeID(202), false)

	found := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DupOrdinal {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected 1 DupOrdinal diagnostic, got %d", found)
	}
	if len(node.Enum.Enumerants) != 2 {
		t.Fatalf("both enumerants should still be emitted, got %d", len(node.Enum.Enumerants))
	}
}
