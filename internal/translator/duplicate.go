package translator

import (
	"schemac/internal/decl"
	"schemac/internal/diag"
)

// detectDuplicateNames walks every scope in the MemberInfo tree rooted at
// id and reports a name already defined in the same scope. Anonymous
// members (synthetic union-field wrappers, unnamed unions already
// collapsed away by traverseUnion) carry no name and are skipped.
func (st *StructTranslator) detectDuplicateNames(id MemberID) {
	m := st.member(id)
	seen := make(map[string]MemberID, len(m.Children))
	for _, c := range m.Children {
		cm := st.member(c)
		if cm.Name != "" {
			if prevID, dup := seen[cm.Name]; dup {
				prev := st.member(prevID)
				d := st.tree.Get(cm.DeclID)
				prevDecl := st.tree.Get(prev.DeclID)
				diag.ReportError(st.reporter, diag.DupName, d.Span,
					"name already defined in this scope: "+cm.Name).
					WithNote(prevDecl.Span, "previous declaration here").
					Emit()
			} else {
				seen[cm.Name] = c
			}
		}
		if len(cm.Children) > 0 {
			st.detectDuplicateNames(c)
		}
	}
}

// detectDuplicateOrdinals reports a true ordinal duplicate (two members
// sharing one ordinal value) at every occurrence after the first, noting
// the first occurrence's span. checkOrdinalSequence already reports the
// "skipped ordinal" gap case; this handles the ov < expected case it
// defers here, where both sites' spans are needed together.
func (st *StructTranslator) detectDuplicateOrdinals() {
	for _, members := range st.ordinals {
		if len(members) < 2 {
			continue
		}
		first := st.tree.Get(st.member(members[0]).DeclID)
		for _, id := range members[1:] {
			d := st.tree.Get(st.member(id).DeclID)
			diag.ReportError(st.reporter, diag.DupOrdinal, d.Span, "duplicate ordinal").
				WithNote(first.Span, "previously used here").
				Emit()
		}
	}
}

// reportDuplicateOrdinalDecls reports every occurrence after the first of
// a shared ordinal among a flat list of declarations that carry no
// MemberInfo of their own (enumerants, methods), noting the first
// occurrence's span.
func reportDuplicateOrdinalDecls(tree *decl.Tree, reporter diag.Reporter, ids []decl.ID) {
	if len(ids) < 2 {
		return
	}
	first := tree.Get(ids[0])
	for _, id := range ids[1:] {
		d := tree.Get(id)
		diag.ReportError(reporter, diag.DupOrdinal, d.Span, "duplicate ordinal").
			WithNote(first.Span, "previously used here").
			Emit()
	}
}
