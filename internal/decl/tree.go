package decl

import "schemac/internal/source"

// Tree is a complete declaration tree for a single schema node, as handed
// to the translator by whatever upstream collaborator parses source text.
type Tree struct {
	Arena    *Arena[Declaration]
	Interner *source.Interner
	Root     ID
}

// NewTree returns an empty tree backed by a fresh arena and interner.
func NewTree() *Tree {
	return &Tree{
		Arena:    NewArena[Declaration](16),
		Interner: source.NewInterner(),
	}
}

// Add allocates d and returns its handle.
func (t *Tree) Add(d Declaration) ID {
	return ID(t.Arena.Allocate(d))
}

// Get dereferences a handle, or nil for NoID / an out-of-range handle.
func (t *Tree) Get(id ID) *Declaration {
	return t.Arena.Get(uint32(id))
}

// Name returns the declaration's interned display name, or "" if anonymous
// or the handle is invalid.
func (t *Tree) Name(id ID) string {
	d := t.Get(id)
	if d == nil || d.Name == source.NoStringID {
		return ""
	}
	name, _ := t.Interner.Lookup(d.Name)
	return name
}
