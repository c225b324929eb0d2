package resolver

import "schemac/internal/schema"

// Scoped is a Resolver bound to one lookup scope within a Table: every
// Resolve call walks up Scope's ancestor chain for an unqualified name, or
// a dotted chain of nested scopes for a qualified one.
type Scoped struct {
	table *Table
	scope schema.NodeID
}

// NewScoped returns a Resolver that resolves names as seen from scope.
func NewScoped(table *Table, scope schema.NodeID) *Scoped {
	return &Scoped{table: table, scope: scope}
}

func (s *Scoped) Resolve(qualifiedName []string) (Resolution, bool) {
	var d declared
	var ok bool
	if len(qualifiedName) == 1 {
		d, ok = s.table.lookupUnqualified(s.scope, qualifiedName[0])
	} else {
		d, ok = s.table.lookupQualified(s.scope, qualifiedName)
	}
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Kind: d.kind, ID: d.id}, true
}

func (s *Scoped) ResolveBootstrapSchema(id schema.NodeID) (schema.Node, bool) {
	n, ok := s.table.boot[id]
	return n, ok
}

func (s *Scoped) ResolveFinalSchema(id schema.NodeID) (schema.Node, bool) {
	n, ok := s.table.final[id]
	return n, ok
}
