package project

import (
	"os"
	"path/filepath"
	"testing"

	"schemac/internal/decl"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDeclarationFixtureStructWithField(t *testing.T) {
	path := writeFixture(t, `
kind = "struct"
name = "Point"

[[children]]
kind = "field"
name = "x"
has_ordinal = true
ordinal = 0

[children.type]
name = "int32"
`)

	tree, err := LoadDeclarationFixture(path)
	if err != nil {
		t.Fatalf("LoadDeclarationFixture: %v", err)
	}

	root := tree.Get(tree.Root)
	if root.Kind != decl.KindStruct {
		t.Fatalf("root kind = %v, want KindStruct", root.Kind)
	}
	if tree.Name(tree.Root) != "Point" {
		t.Fatalf("root name = %q, want Point", tree.Name(tree.Root))
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}

	field := tree.Get(root.Children[0])
	if field.Kind != decl.KindField {
		t.Fatalf("child kind = %v, want KindField", field.Kind)
	}
	if !field.HasOrdinal || field.Ordinal != 0 {
		t.Fatalf("expected ordinal 0, got has=%v ordinal=%d", field.HasOrdinal, field.Ordinal)
	}
	if field.Type == nil || len(field.Type.Name.Parts) != 1 {
		t.Fatalf("expected a single-segment type name, got %+v", field.Type)
	}
}

func TestLoadDeclarationFixtureUnknownKindErrors(t *testing.T) {
	path := writeFixture(t, `kind = "bogus"`)
	if _, err := LoadDeclarationFixture(path); err == nil {
		t.Fatal("expected an error for an unknown declaration kind")
	}
}

func TestLoadDeclarationFixtureQualifiedTypeName(t *testing.T) {
	path := writeFixture(t, `
kind = "field"
name = "inner"

[type]
name = "Outer.Inner"
`)

	tree, err := LoadDeclarationFixture(path)
	if err != nil {
		t.Fatalf("LoadDeclarationFixture: %v", err)
	}
	root := tree.Get(tree.Root)
	parts := root.Type.Name.Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 name segments, got %d", len(parts))
	}
	first, _ := tree.Interner.Lookup(parts[0])
	second, _ := tree.Interner.Lookup(parts[1])
	if first != "Outer" || second != "Inner" {
		t.Fatalf("got segments %q, %q, want Outer, Inner", first, second)
	}
}
