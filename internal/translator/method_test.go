package translator

import (
	"testing"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
)

// methodDecl adds a method declaration with no parameters as a child of
// parent and returns its ID.
func methodDecl(t *decl.Tree, parent decl.ID, name string, ordinal uint16) decl.ID {
	id := t.Add(decl.Declaration{
		Kind:       decl.KindMethod,
		Name:       t.Intern(name),
		HasOrdinal: true,
		Ordinal:    ordinal,
	})
	p := t.Get(parent)
	p.Children = append(p.Children, id)
	return id
}

// TestTranslateInterfaceSkippedOrdinalReported covers the interface's own
// method ordinal space: a gap between two methods' ordinals must be
// reported independently of any parameter ordinal checking.
func TestTranslateInterfaceSkippedOrdinalReported(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindInterface, Name: tree.Intern("Svc")})
	tree.Root = root

	methodDecl(tree, root, "first", 0)
	methodDecl(tree, root, "second", 2)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	node, _ := translateInterface(tree, r, reporter, root, schema.NodeID(600), false)

	found := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DupOrdinalSkipped {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected 1 DupOrdinalSkipped diagnostic, got %d", found)
	}
	if len(node.Interface.Methods) != 2 {
		t.Fatalf("expected both methods still emitted, got %d", len(node.Interface.Methods))
	}
}

// TestTranslateInterfaceDuplicateOrdinalReported covers the duplicate
// case: two methods sharing ordinal 0 must produce exactly one
// diagnostic.
func TestTranslateInterfaceDuplicateOrdinalReported(t *testing.T) {
	tree := decl.NewTree()
	root := tree.Add(decl.Declaration{Kind: decl.KindInterface, Name: tree.Intern("Svc")})
	tree.Root = root

	methodDecl(tree, root, "first", 0)
	methodDecl(tree, root, "second", 0)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	r := resolver.NewScoped(resolver.NewTable(), schema.NodeID(1))
	translateInterface(tree, r, reporter, root, schema.NodeID(601), false)

	found := 0
	for _, d := range bag.Items() {
		if d.Code == diag.DupOrdinal {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected 1 DupOrdinal diagnostic, got %d", found)
	}
}
