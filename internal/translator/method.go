package translator

import (
	"sort"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/layout"
	"schemac/internal/resolver"
	"schemac/internal/schema"
)

// translateInterface builds an InterfaceBody from an interface
// declaration's method children, in code order. Each method's parameter
// list is its own Children (param fields, laid out exactly like a
// struct's) and is translated into its own synthetic struct node via
// StructTranslator, same as any other struct; its result type, when
// named explicitly via Type, resolves to an existing struct rather than
// being synthesized. The methods' own ordinals (independent of any
// parameter's) are validated for gaps and duplicates before the loop.
func translateInterface(tree *decl.Tree, res resolver.Resolver, reporter diag.Reporter, declID decl.ID, rootID schema.NodeID, compileAnnotations bool) (schema.Node, []schema.Node) {
	d := tree.Get(declID)
	ifaceSt := newStructTranslator(tree, res, reporter, compileAnnotations)
	validateMethodOrdinals(tree, reporter, d)

	var methods []schema.Method
	var groups []schema.Node
	var codeOrder uint16
	var nextParamID uint64 = uint64(rootID)*2 + 1

	for _, childID := range d.Children {
		child := tree.Get(childID)
		if child == nil || child.Kind != decl.KindMethod {
			continue
		}
		paramRootID := schema.NodeID(schema.GenerateGroupID(nextParamID, uint32(codeOrder)))
		nextParamID++

		paramSt := newStructTranslator(tree, res, reporter, compileAnnotations)
		paramNode, paramGroups := paramSt.translateMethodParams(childID, paramRootID)
		groups = append(groups, paramNode)
		groups = append(groups, paramGroups...)

		resultID := schema.NoNodeID
		if child.Type != nil {
			if t, ok := ifaceSt.compileType(child.Type); ok {
				resultID = t.NodeID
			}
		}

		methods = append(methods, schema.Method{
			Name:           child.Name,
			Ordinal:        child.Ordinal,
			CodeOrder:      codeOrder,
			ParamStructID:  paramNode.ID,
			ResultStructID: resultID,
		})
		codeOrder++
	}

	node := schema.Node{
		ID:          rootID,
		DisplayName: d.Name,
		Kind:        schema.NodeInterface,
		Interface:   schema.InterfaceBody{Methods: methods},
		Annotations: ifaceSt.compileAnnotationApplications(d, decl.KindInterface),
	}
	return node, groups
}

// translateMethodParams treats methodDeclID's Children as the body of a
// struct: one field per parameter, laid out and ordinal-checked exactly
// like any other struct's members.
func (st *StructTranslator) translateMethodParams(methodDeclID decl.ID, rootID schema.NodeID) (schema.Node, []schema.Node) {
	rootGroup := layout.NewGroup(st.top, nil)
	rootMember := st.newMember(MemberInfo{
		DeclID:    methodDeclID,
		Kind:      decl.KindStruct,
		OwnsGroup: rootGroup,
	})
	st.root = rootMember

	var codeOrder uint16
	children := st.traverse(methodDeclID, rootMember, rootGroup, &codeOrder)
	st.member(rootMember).Children = children

	st.collectOrdinals(rootMember)
	st.detectDuplicateOrdinals()
	st.runOrdinalPass()
	st.detectDuplicateNames(rootMember)

	st.rootIDUsed = rootID
	root := st.finishGroup(rootMember, rootID, 0)
	return root, st.groupNodes
}

// validateMethodOrdinals checks the dense-sequence and no-duplicates
// rules over an interface's own methods' ordinals, the same rules a
// struct's fields are checked against.
func validateMethodOrdinals(tree *decl.Tree, reporter diag.Reporter, d *decl.Declaration) {
	byOrdinal := make(map[uint16][]decl.ID)
	var ordinalValues []int
	for _, childID := range d.Children {
		child := tree.Get(childID)
		if child == nil || child.Kind != decl.KindMethod {
			continue
		}
		if _, seen := byOrdinal[child.Ordinal]; !seen {
			ordinalValues = append(ordinalValues, int(child.Ordinal))
		}
		byOrdinal[child.Ordinal] = append(byOrdinal[child.Ordinal], childID)
	}
	sort.Ints(ordinalValues)

	expected := 0
	for _, ov := range ordinalValues {
		ordinal := uint16(ov)
		checkOrdinalSequence(reporter, ordinal, &expected)
		reportDuplicateOrdinalDecls(tree, reporter, byOrdinal[ordinal])
	}
}
