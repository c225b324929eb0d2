package translator

import (
	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/layout"
)

// traverse walks declID's children (a struct or group body) under
// parentMember, bound to group, creating one MemberInfo per field, union,
// and group child. It returns the list of direct children in declaration
// order; codeOrder is threaded through so an unnamed union's members
// continue the enclosing scope's counter.
func (st *StructTranslator) traverse(declID decl.ID, parentMember MemberID, group *layout.Group, codeOrder *uint16) []MemberID {
	d := st.tree.Get(declID)
	if d == nil {
		return nil
	}
	var out []MemberID
	for _, childID := range d.Children {
		child := st.tree.Get(childID)
		if child == nil {
			continue
		}
		switch child.Kind {
		case decl.KindField:
			out = append(out, st.traverseField(childID, parentMember, group, nil, codeOrder))
		case decl.KindUnion:
			if child.Name == 0 {
				if st.seenUnnamedUnion[parentMember] {
					diag.ReportError(st.reporter, diag.DupUnnamedUnion, child.Span,
						"an unnamed union is already defined in this scope").Emit()
				}
				st.seenUnnamedUnion[parentMember] = true
			}
			out = append(out, st.traverseUnion(childID, parentMember, group, codeOrder)...)
		case decl.KindGroup:
			out = append(out, st.traverseNamedGroup(childID, parentMember, group, codeOrder))
		default:
			// consts/usings/annotations declared alongside fields carry no
			// layout and are not part of the MemberInfo tree.
		}
	}
	return out
}

// traverseField creates a plain-field MemberInfo. If u is non-nil the
// field is a union variant and allocates from the union's shared
// locations through group.
func (st *StructTranslator) traverseField(declID decl.ID, parent MemberID, group *layout.Group, u *layout.Union, codeOrder *uint16) MemberID {
	d := st.tree.Get(declID)
	m := MemberInfo{
		Parent:         parent,
		DeclID:         declID,
		Kind:           decl.KindField,
		Name:           st.tree.Name(declID),
		CodeOrder:      *codeOrder,
		HasOrdinal:     d.HasOrdinal,
		Ordinal:        d.Ordinal,
		EnclosingGroup: group,
		InUnion:        u,
	}
	*codeOrder++
	return st.newMember(m)
}

// traverseUnion handles both named and unnamed unions. A named union gets
// its own MemberInfo (carrying OwnsUnion and, since a schema node is also
// emitted for it, OwnsGroup); an unnamed union contributes no MemberInfo
// of its own and instead returns its members directly, continuing the
// caller's code-order counter and MemberInfo parent.
func (st *StructTranslator) traverseUnion(declID decl.ID, parent MemberID, enclosing *layout.Group, codeOrder *uint16) []MemberID {
	d := st.tree.Get(declID)
	u := layout.NewUnion(st.top)
	st.registerUnionOrdinal(u, d)

	isNamed := d.Name != 0
	var unionMember MemberID = parent

	if isNamed {
		mi := MemberInfo{
			Parent:         parent,
			DeclID:         declID,
			Kind:           decl.KindUnion,
			Name:           st.tree.Name(declID),
			CodeOrder:      *codeOrder,
			HasOrdinal:     d.HasOrdinal,
			Ordinal:        d.Ordinal,
			EnclosingGroup: enclosing,
			OwnsUnion:      u,
			OwnsGroup:      layout.NewGroup(st.top, nil),
			IsGroup:        true,
		}
		*codeOrder++
		unionMember = st.newMember(mi)
		st.discriminants[u].enclosingGroup = enclosing
		st.discriminants[u].member = unionMember
	} else {
		st.discriminants[u].enclosingGroup = enclosing
		st.discriminants[u].member = parent
	}

	var innerCounter uint16
	inner := codeOrder
	if isNamed {
		inner = &innerCounter
	}

	var members []MemberID
	for _, childID := range d.Children {
		child := st.tree.Get(childID)
		if child == nil {
			continue
		}
		st.discriminants[u].count++
		switch child.Kind {
		case decl.KindField:
			wrapper := st.wrapFieldInSyntheticGroup(childID, unionMember, u, inner)
			members = append(members, wrapper)
		case decl.KindGroup:
			members = append(members, st.traverseGroupInUnion(childID, unionMember, u, inner))
		}
	}

	if isNamed {
		st.member(unionMember).Children = members
		return []MemberID{unionMember}
	}
	return members
}

// wrapFieldInSyntheticGroup implements "a field directly inside a union is
// wrapped in a single-member synthetic Group over the union."
func (st *StructTranslator) wrapFieldInSyntheticGroup(declID decl.ID, parent MemberID, u *layout.Union, codeOrder *uint16) MemberID {
	wrapperGroup := layout.NewGroup(st.top, u)
	wrapper := MemberInfo{
		Parent: parent,
		DeclID: declID,
		Kind:   decl.KindGroup,
		// The wrapper and the field it wraps are the same declared item;
		// they share this code-order value rather than the field consuming
		// a second tick of the counter. traverseField below performs the
		// one real increment.
		CodeOrder:   *codeOrder,
		HasOrdinal:  false,
		OwnsGroup:   wrapperGroup,
		InUnion:     u,
		IsGroup:     true,
		IsSynthetic: true,
	}
	wrapperID := st.newMember(wrapper)
	fieldID := st.traverseField(declID, wrapperID, wrapperGroup, nil, codeOrder)
	st.member(wrapperID).Children = []MemberID{fieldID}
	// The synthetic wrapper itself carries the field's ordinal, since the
	// ordinal pass dispatches on ordinal -> member and a bare union field's
	// ordinal belongs to the field, not a separate group.
	field := st.member(fieldID)
	w := st.member(wrapperID)
	w.HasOrdinal = field.HasOrdinal
	w.Ordinal = field.Ordinal
	return wrapperID
}

func (st *StructTranslator) traverseGroupInUnion(declID decl.ID, parent MemberID, u *layout.Union, codeOrder *uint16) MemberID {
	return st.traverseNamedGroupCommon(declID, parent, nil, u, codeOrder)
}

func (st *StructTranslator) traverseNamedGroup(declID decl.ID, parent MemberID, enclosing *layout.Group, codeOrder *uint16) MemberID {
	return st.traverseNamedGroupCommon(declID, parent, enclosing, nil, codeOrder)
}

// traverseNamedGroupCommon creates a named group's MemberInfo (emitting a
// schema node for it) and recurses into its body. Exactly one of
// enclosing/u is non-nil: enclosing for a group-in-struct, u for a
// group-in-union.
func (st *StructTranslator) traverseNamedGroupCommon(declID decl.ID, parent MemberID, enclosing *layout.Group, u *layout.Union, codeOrder *uint16) MemberID {
	_ = st.tree.Get(declID)
	groupScope := layout.NewGroup(st.top, u)
	mi := MemberInfo{
		Parent:         parent,
		DeclID:         declID,
		Kind:           decl.KindGroup,
		Name:           st.tree.Name(declID),
		CodeOrder:      *codeOrder,
		EnclosingGroup: enclosing,
		InUnion:        u,
		OwnsGroup:      groupScope,
		IsGroup:        true,
	}
	*codeOrder++
	id := st.newMember(mi)
	var inner uint16
	children := st.traverse(declID, id, groupScope, &inner)
	st.member(id).Children = children
	return id
}
