package translator

import (
	"sort"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
)

// translateConst compiles a top-level const declaration's type and value.
// Unlike a struct field's value, a const's value is compiled directly
// against compileScalar/compileComposite rather than through the deferred
// queue: a const referencing another const not yet finalized hits the
// same "must be qualified"/unresolved diagnostics a struct field would.
func translateConst(tree *decl.Tree, res resolver.Resolver, reporter diag.Reporter, declID decl.ID, rootID schema.NodeID, compileAnnotations bool) schema.Node {
	d := tree.Get(declID)
	st := newStructTranslator(tree, res, reporter, compileAnnotations)
	t, _ := st.compileType(d.Type)

	var v schema.Value
	if isCompositeValue(t.Kind) {
		v = st.values.compileComposite(d.Value, t)
	} else {
		v = st.values.compileScalar(d.Value, t)
	}

	return schema.Node{
		ID:          rootID,
		DisplayName: d.Name,
		Kind:        schema.NodeConst,
		Const:       schema.ConstBody{Type: t, Value: v},
		Annotations: st.compileAnnotationApplications(d, decl.KindConst),
	}
}

// translateAnnotationDecl compiles an annotation declaration's own type
// and target-flags bitmask.
func translateAnnotationDecl(tree *decl.Tree, res resolver.Resolver, reporter diag.Reporter, declID decl.ID, rootID schema.NodeID, compileAnnotations bool) schema.Node {
	d := tree.Get(declID)
	st := newStructTranslator(tree, res, reporter, compileAnnotations)
	t, _ := st.compileType(d.Type)

	var flags schema.TargetFlags
	for _, k := range d.Targets {
		flags |= kindTargetFlag(k)
	}

	return schema.Node{
		ID:          rootID,
		DisplayName: d.Name,
		Kind:        schema.NodeAnnotation,
		Annotation:  schema.AnnotationBody{Type: t, Targets: flags},
		Annotations: st.compileAnnotationApplications(d, decl.KindAnnotation),
	}
}

// translateEnum builds an EnumBody from an enum declaration's enumerant
// children. Enumerants are emitted in ordinal order (mirroring an
// ordinal -> (codeOrder, decl) multimap), each still carrying its own
// declaration-order position as CodeOrder; the ordinal sequence is
// validated for gaps and duplicates exactly like a struct's fields.
func translateEnum(tree *decl.Tree, res resolver.Resolver, reporter diag.Reporter, declID decl.ID, rootID schema.NodeID, compileAnnotations bool) schema.Node {
	d := tree.Get(declID)
	annSt := newStructTranslator(tree, res, reporter, compileAnnotations)

	byOrdinal := make(map[uint16][]enumerantOccurrence)
	var ordinalValues []int
	var codeOrder uint16
	for _, childID := range d.Children {
		child := tree.Get(childID)
		if child == nil || child.Kind != decl.KindEnumerant {
			continue
		}
		if _, seen := byOrdinal[child.Ordinal]; !seen {
			ordinalValues = append(ordinalValues, int(child.Ordinal))
		}
		byOrdinal[child.Ordinal] = append(byOrdinal[child.Ordinal], enumerantOccurrence{
			declID:    childID,
			name:      child.Name,
			codeOrder: codeOrder,
		})
		codeOrder++
	}
	sort.Ints(ordinalValues)

	enumerants := make([]schema.Enumerant, 0, codeOrder)
	expected := 0
	for _, ov := range ordinalValues {
		ordinal := uint16(ov)
		checkOrdinalSequence(reporter, ordinal, &expected)
		occurrences := byOrdinal[ordinal]
		ids := make([]decl.ID, len(occurrences))
		for i, occ := range occurrences {
			enumerants = append(enumerants, schema.Enumerant{
				Name:      occ.name,
				Ordinal:   ordinal,
				CodeOrder: occ.codeOrder,
			})
			ids[i] = occ.declID
		}
		reportDuplicateOrdinalDecls(tree, reporter, ids)
	}

	return schema.Node{
		ID:          rootID,
		DisplayName: d.Name,
		Kind:        schema.NodeEnum,
		Enum:        schema.EnumBody{Enumerants: enumerants},
		Annotations: annSt.compileAnnotationApplications(d, decl.KindEnum),
	}
}

// enumerantOccurrence is one enumerant child gathered before the ordinal
// pass, keyed into byOrdinal by its declared ordinal value.
type enumerantOccurrence struct {
	declID    decl.ID
	name      source.StringID
	codeOrder uint16
}
