package resolver

import "schemac/internal/schema"

// declared is one name registered in some scope.
type declared struct {
	kind Kind
	id   schema.NodeID
}

// Table is an in-memory resolver backing store: a per-scope
// name index plus the bootstrap and final schema snapshots keyed by node
// id. It implements no interface itself; Scoped wraps it into a Resolver
// bound to a particular lookup scope chain.
type Table struct {
	names   map[schema.NodeID]map[string]declared
	scopes  map[schema.NodeID]schema.NodeID // child scope -> parent scope
	boot    map[schema.NodeID]schema.Node
	final   map[schema.NodeID]schema.Node
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		names:  make(map[schema.NodeID]map[string]declared),
		scopes: make(map[schema.NodeID]schema.NodeID),
		boot:   make(map[schema.NodeID]schema.Node),
		final:  make(map[schema.NodeID]schema.Node),
	}
}

// SetParentScope records that scope's enclosing lookup scope is parent, so
// an unqualified name not found in scope falls through to parent.
func (t *Table) SetParentScope(scope, parent schema.NodeID) {
	t.scopes[scope] = parent
}

// Declare registers name as visible within scope, resolving to kind/id.
// Re-declaring the same name in the same scope overwrites the previous
// entry; duplicate-name diagnostics are the translator's responsibility,
// not the table's.
func (t *Table) Declare(scope schema.NodeID, name string, kind Kind, id schema.NodeID) {
	m, ok := t.names[scope]
	if !ok {
		m = make(map[string]declared)
		t.names[scope] = m
	}
	m[name] = declared{kind: kind, id: id}
}

// DeclareBootstrapSchema records the (possibly partial) schema known for id
// during bootstrap.
func (t *Table) DeclareBootstrapSchema(id schema.NodeID, node schema.Node) {
	t.boot[id] = node
}

// FinalizeSchema replaces id's schema with its fully-compiled form.
func (t *Table) FinalizeSchema(id schema.NodeID, node schema.Node) {
	t.final[id] = node
}

// lookupUnqualified searches scope and its ancestor chain for name.
func (t *Table) lookupUnqualified(scope schema.NodeID, name string) (declared, bool) {
	for {
		if m, ok := t.names[scope]; ok {
			if d, ok := m[name]; ok {
				return d, true
			}
		}
		parent, ok := t.scopes[scope]
		if !ok || parent == scope {
			return declared{}, false
		}
		scope = parent
	}
}

// lookupQualified walks a dotted path starting from root, requiring every
// segment but the last to itself resolve to something with a nested scope
// (the lookup simply reuses the node id as a scope id, since schema node
// ids double as the scope key they were declared under).
func (t *Table) lookupQualified(scope schema.NodeID, path []string) (declared, bool) {
	if len(path) == 0 {
		return declared{}, false
	}
	d, ok := t.lookupUnqualified(scope, path[0])
	if !ok {
		return declared{}, false
	}
	for _, seg := range path[1:] {
		m, ok := t.names[d.id]
		if !ok {
			return declared{}, false
		}
		d, ok = m[seg]
		if !ok {
			return declared{}, false
		}
	}
	return d, true
}
