package translator

import (
	"fmt"
	"sort"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/layout"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
)

// discriminantInfo tracks one union's discriminant allocation state across
// the ordinal pass and the finish_group pass.
type discriminantInfo struct {
	enclosingGroup *layout.Group
	member         MemberID // the union's own MemberInfo, or its enclosing scope's if unnamed
	count          int
	allocated      bool
	offset         uint16
	hasOrdinal     bool
	ordinal        uint16
}

// StructTranslator lays out one struct (or the root struct of a method's
// implicit param/result type) in three passes: a single pre-order traversal
// building a MemberInfo tree, an ascending-ordinal pass assigning offsets,
// and a post-order finish_group pass assigning discriminants and group ids.
type StructTranslator struct {
	tree     *decl.Tree
	res      resolver.Resolver
	reporter diag.Reporter

	top     *layout.Top
	members *decl.Arena[MemberInfo]
	root    MemberID

	discriminants    map[*layout.Union]*discriminantInfo
	ordinals         map[uint16][]MemberID
	seenUnnamedUnion map[MemberID]bool

	compileAnnotations bool

	groupNodes []schema.Node
	rootIDUsed schema.NodeID

	values *ValueCompiler
}

func newStructTranslator(tree *decl.Tree, res resolver.Resolver, reporter diag.Reporter, compileAnnotations bool) *StructTranslator {
	st := &StructTranslator{
		tree:               tree,
		res:                res,
		reporter:           reporter,
		top:                &layout.Top{},
		members:            decl.NewArena[MemberInfo](32),
		discriminants:      make(map[*layout.Union]*discriminantInfo),
		ordinals:           make(map[uint16][]MemberID),
		seenUnnamedUnion:   make(map[MemberID]bool),
		compileAnnotations: compileAnnotations,
	}
	st.values = newValueCompiler(st)
	return st
}

func (st *StructTranslator) newMember(m MemberInfo) MemberID {
	id := MemberID(st.members.Allocate(m))
	st.member(id).Self = id
	return id
}

func (st *StructTranslator) member(id MemberID) *MemberInfo {
	return st.members.Get(uint32(id))
}

// registerUnionOrdinal records a named union's own ordinal, if any. The
// ordinal pass allocates the union's discriminant when it reaches that
// ordinal. The union's ordinal is not compared against its members'
// ordinals anywhere in this package.
func (st *StructTranslator) registerUnionOrdinal(u *layout.Union, d *decl.Declaration) {
	st.discriminants[u] = &discriminantInfo{}
	if d.HasOrdinal {
		st.discriminants[u].hasOrdinal = true
		st.discriminants[u].ordinal = d.Ordinal
	}
}

// TranslateStruct runs the full three-pass algorithm over declID's body
// (a struct or group declaration with Children) and returns the finished
// root schema.Node plus every group node generated while laying it out.
// rootID is the node id the caller has already assigned this declaration
// (e.g. from the file's id-allocation pass); every generated group's id is
// derived from it via schema.GenerateGroupID.
func (st *StructTranslator) TranslateStruct(declID decl.ID, rootID schema.NodeID) (schema.Node, []schema.Node) {
	rootGroup := layout.NewGroup(st.top, nil)
	rootMember := st.newMember(MemberInfo{
		DeclID:    declID,
		Kind:      decl.KindStruct,
		Name:      st.tree.Name(declID),
		OwnsGroup: rootGroup,
	})
	st.root = rootMember

	var codeOrder uint16
	children := st.traverse(declID, rootMember, rootGroup, &codeOrder)
	st.member(rootMember).Children = children

	st.collectOrdinals(rootMember)
	st.detectDuplicateOrdinals()
	st.runOrdinalPass()
	st.detectDuplicateNames(rootMember)

	st.rootIDUsed = rootID
	root := st.finishGroup(rootMember, rootID, 0)
	return root, st.groupNodes
}

// rebuildAfterFinish re-derives the schema.Node tree after the value
// compiler's Finish has rewritten any composite MemberInfo.Default in
// place. finishGroup's node ids are a pure function of parent id and
// child index, so re-running it is safe and picks up the finished
// defaults without disturbing anything else.
func (st *StructTranslator) rebuildAfterFinish() (schema.Node, []schema.Node) {
	st.groupNodes = nil
	root := st.finishGroup(st.root, st.rootIDUsed, 0)
	return root, st.groupNodes
}

// collectOrdinals walks the MemberInfo tree and builds the ordinal ->
// members multimap the ordinal pass iterates over. Groups contribute no
// ordinal of their own (they are never visited by the ordinal pass) but
// their children still do.
func (st *StructTranslator) collectOrdinals(id MemberID) {
	m := st.member(id)
	if m.HasOrdinal && m.Kind != decl.KindGroup {
		st.ordinals[m.Ordinal] = append(st.ordinals[m.Ordinal], id)
	} else if m.HasOrdinal && m.IsSynthetic {
		// The synthetic field-in-union wrapper carries the ordinal on
		// behalf of its single field, which is laid out through the
		// wrapper and so is not collected a second time.
		st.ordinals[m.Ordinal] = append(st.ordinals[m.Ordinal], id)
		return
	}
	for _, c := range m.Children {
		st.collectOrdinals(c)
	}
}

// runOrdinalPass assigns data/pointer offsets in strictly ascending
// ordinal order and reports duplicate/skipped ordinals per the
// dense-sequence rule.
func (st *StructTranslator) runOrdinalPass() {
	ordinalValues := make([]int, 0, len(st.ordinals))
	for k := range st.ordinals {
		ordinalValues = append(ordinalValues, int(k))
	}
	sort.Ints(ordinalValues)

	expected := 0
	for _, ov := range ordinalValues {
		ordinal := uint16(ov)
		st.checkOrdinalSequence(ordinal, &expected)
		for _, id := range st.ordinals[ordinal] {
			st.layoutMember(id)
		}
	}
}

func (st *StructTranslator) checkOrdinalSequence(ordinal uint16, expected *int) {
	checkOrdinalSequence(st.reporter, ordinal, expected)
}

// checkOrdinalSequence reports a skipped ordinal against the running
// expected counter. A true duplicate (ov < *expected) is reported where
// the duplicate member is actually encountered (detectDuplicateOrdinals
// / reportDuplicateOrdinalDecls), since both occurrences' spans are
// needed there.
func checkOrdinalSequence(reporter diag.Reporter, ordinal uint16, expected *int) {
	ov := int(ordinal)
	switch {
	case ov == *expected:
		*expected = ov + 1
	case ov > *expected:
		diag.ReportError(reporter, diag.DupOrdinalSkipped,
			source.Span{}, fmt.Sprintf("Skipped ordinal @%d", *expected)).Emit()
		*expected = ov + 1
	}
}

// layoutMember assigns a data/pointer offset to one ordinal-bearing
// member: a Field, a field-in-union wrapper (synthetic group), or a named
// union whose ordinal allocates its discriminant now.
func (st *StructTranslator) layoutMember(id MemberID) {
	m := st.member(id)
	switch m.Kind {
	case decl.KindField:
		st.layoutField(m)
	case decl.KindGroup:
		if m.IsSynthetic && len(m.Children) == 1 {
			st.layoutField(st.member(m.Children[0]))
		}
	case decl.KindUnion:
		if m.OwnsUnion != nil {
			st.allocateDiscriminantNow(m.OwnsUnion, m.EnclosingGroup)
		}
	}
}

func (st *StructTranslator) layoutField(m *MemberInfo) {
	d := st.tree.Get(m.DeclID)
	t, _ := st.compileType(d.Type)
	m.Type = t

	if t.Kind.IsPointer() {
		if m.InUnion != nil {
			m.Offset = m.EnclosingGroup.AddUnionPointer()
		} else {
			m.Offset = m.EnclosingGroup.AddPointer()
		}
	} else if t.Kind == schema.Void {
		m.Offset = m.EnclosingGroup.AddVoidData()
	} else {
		lg := t.Kind.LgSize()
		if m.InUnion != nil {
			m.Offset = m.EnclosingGroup.AddUnionData(lg)
		} else {
			m.Offset = m.EnclosingGroup.AddData(lg)
		}
	}
	m.Default = st.values.CompileBootstrap(m.Self, d.Value, t)
}

// allocateDiscriminantNow allocates a 16-bit discriminant field from
// enclosingGroup for u, if one has not already been allocated.
func (st *StructTranslator) allocateDiscriminantNow(u *layout.Union, enclosingGroup *layout.Group) {
	info := st.discriminants[u]
	if info.allocated {
		diag.ReportError(st.reporter, diag.UnionOrdinalConflict, source.Span{},
			"discriminant offset already allocated").Emit()
		return
	}
	info.offset = uint16(enclosingGroup.AddData(4)) // u16-sized discriminant
	info.allocated = true
}

// ensureDiscriminant lazily allocates a discriminant for every union that
// never had an ordinal reach it in the ordinal pass (e.g. an unnamed
// union, or a named union the user never gave an ordinal), including
// all-void unions: a discriminant is always present even when every
// variant is Void, since the discriminant itself still distinguishes them.
func (st *StructTranslator) ensureDiscriminant(u *layout.Union) uint16 {
	info := st.discriminants[u]
	if !info.allocated {
		info.offset = uint16(info.enclosingGroup.AddData(4))
		info.allocated = true
	}
	return info.offset
}

// finishGroup is the recursive pass that assigns this
// member's own group id (derived from parentID and its position among its
// parent's emitted group children), ensures every union-owning scope it
// directly contains has a discriminant, and builds its emitted
// schema.Node. isRoot (parentID == NoNodeID's caller, identified by id ==
// st.root) controls whether the node is recorded as a group node.
func (st *StructTranslator) finishGroup(id MemberID, parentID schema.NodeID, indexInParent uint32) schema.Node {
	m := st.member(id)
	isRoot := id == st.root

	nodeID := parentID
	if !isRoot {
		nodeID = schema.NodeID(schema.GenerateGroupID(uint64(parentID), indexInParent))
		m.NodeID = nodeID
	}

	var fields []schema.Field
	var discCount, discOffset uint16
	discOffset = schema.NoDiscriminantOffset
	var groupIndex uint32

	for _, childID := range m.Children {
		child := st.member(childID)
		switch {
		case child.Kind == decl.KindField:
			fields = append(fields, st.emitField(child))
		case child.Kind == decl.KindGroup && child.IsSynthetic:
			fields = append(fields, st.emitSyntheticUnionField(child))
		case child.Kind == decl.KindGroup:
			fields = append(fields, st.emitNamedGroupField(child, nodeID, groupIndex))
			groupIndex++
		case child.Kind == decl.KindUnion:
			u := child.OwnsUnion
			off := st.ensureDiscriminant(u)
			discCount += uint16(st.discriminants[u].count)
			discOffset = off
			fields = append(fields, st.emitUnionAsGroupField(child, nodeID, groupIndex))
			groupIndex++
		}
	}

	// An unnamed union directly under this scope contributes fields
	// inline (no MemberInfo of its own); its discriminant bookkeeping was
	// recorded under st.discriminants keyed by union pointer, reachable
	// only through the scope id it was registered against. Sweep for it
	// here.
	for u, info := range st.discriminants {
		if info.member == id && info.enclosingGroup == m.OwnsGroup {
			off := st.ensureDiscriminant(u)
			discCount += uint16(info.count)
			discOffset = off
		}
	}

	body := schema.StructBody{
		DataWordCount:      st.top.DataWordCount,
		PointerCount:       st.top.PointerCount,
		Fields:             fields,
		DiscriminantCount:  discCount,
		DiscriminantOffset: discOffset,
		IsGroup:            !isRoot,
	}
	body.PreferredEncoding = preferredListEncoding(body, st.top)

	d := st.tree.Get(m.DeclID)
	node := schema.Node{
		ID:          nodeID,
		DisplayName: d.Name,
		Kind:        schema.NodeStruct,
		Struct:      body,
		Annotations: st.compileAnnotationApplications(d, d.Kind),
	}

	if !isRoot {
		st.groupNodes = append(st.groupNodes, node)
	}
	return node
}

// emitField compiles a plain field's schema.Field record.
func (st *StructTranslator) emitField(m *MemberInfo) schema.Field {
	d := st.tree.Get(m.DeclID)
	return schema.Field{
		Name:      d.Name,
		CodeOrder: m.CodeOrder,
		Ordinal:   m.Ordinal,
		Variant:   schema.FieldRegular,
		Type:      m.Type,
		Offset:    m.Offset,
		Default:   m.Default,
	}
}

// emitSyntheticUnionField unwraps the single-member synthetic group a bare
// union field was wrapped in and emits the field itself, carrying the
// group's discriminant value as its Discriminant.
func (st *StructTranslator) emitSyntheticUnionField(wrapper *MemberInfo) schema.Field {
	field := st.member(wrapper.Children[0])
	f := st.emitField(field)
	f.Discriminant = st.discriminantValue(wrapper)
	return f
}

func (st *StructTranslator) emitNamedGroupField(m *MemberInfo, parentID schema.NodeID, groupIndex uint32) schema.Field {
	d := st.tree.Get(m.DeclID)
	node := st.finishGroup(m.Self, parentID, groupIndex)
	return schema.Field{
		Name:         d.Name,
		CodeOrder:    m.CodeOrder,
		Ordinal:      m.Ordinal,
		Variant:      schema.FieldGroup,
		GroupNodeID:  node.ID,
		Discriminant: st.discriminantValue(m),
	}
}

func (st *StructTranslator) emitUnionAsGroupField(m *MemberInfo, parentID schema.NodeID, groupIndex uint32) schema.Field {
	d := st.tree.Get(m.DeclID)
	node := st.finishGroup(m.Self, parentID, groupIndex)
	return schema.Field{
		Name:        d.Name,
		CodeOrder:   m.CodeOrder,
		Ordinal:     m.Ordinal,
		Variant:     schema.FieldGroup,
		GroupNodeID: node.ID,
	}
}

// discriminantValue returns the code-order position of m among its
// union's variants, used as the emitted schema.Field.Discriminant value:
// variants are assigned discriminant values 0,1,2... in code order. A
// member outside any union gets its own CodeOrder.
func (st *StructTranslator) discriminantValue(m *MemberInfo) uint16 {
	if m.InUnion == nil {
		return m.CodeOrder
	}
	var idx uint16
	for _, sib := range st.member(m.Parent).Children {
		if sib == m.Self {
			break
		}
		if st.member(sib).InUnion == m.InUnion {
			idx++
		}
	}
	return idx
}
