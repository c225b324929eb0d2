package translator

import (
	"testing"

	"schemac/internal/decl"
	"schemac/internal/diag"
	"schemac/internal/resolver"
	"schemac/internal/schema"
	"schemac/internal/source"
)

// declareFinishedUintConst registers a finished UInt8 const named name in
// scope fileScope, resolvable via its id.
func declareFinishedUintConst(table *resolver.Table, fileScope schema.NodeID, name string, id schema.NodeID, val uint64) {
	table.Declare(fileScope, name, resolver.KindConst, id)
	table.FinalizeSchema(id, schema.Node{
		ID:   id,
		Kind: schema.NodeConst,
		Const: schema.ConstBody{
			Type:  schema.Type{Kind: schema.UInt8},
			Value: schema.Value{Kind: schema.UInt8, UInt: val},
		},
	})
}

// TestTryConstantBarewordToReadyConstMustBeQualified covers the common
// case the diagnostic previously missed entirely: an unqualified bareword
// that resolves to a constant whose final schema is already available
// still must be flagged, not silently accepted.
func TestTryConstantBarewordToReadyConstMustBeQualified(t *testing.T) {
	tree := decl.NewTree()
	fileScope := schema.NodeID(1)
	table := resolver.NewTable()
	declareFinishedUintConst(table, fileScope, "Answer", schema.NodeID(10), 42)

	r := resolver.NewScoped(table, fileScope)
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	st := newStructTranslator(tree, r, reporter, false)

	expr := &decl.ValueExpr{Kind: decl.ValueBareWord, Word: tree.Intern("Answer")}
	v, ok := st.values.tryConstant(expr, schema.Type{Kind: schema.UInt8})
	if !ok {
		t.Fatalf("expected the bareword to resolve to the constant's value")
	}
	if v.UInt != 42 {
		t.Fatalf("resolved value = %d, want 42", v.UInt)
	}

	found := 0
	for _, d := range bag.Items() {
		if d.Code == diag.ResMustBeQualified {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected 1 ResMustBeQualified diagnostic, got %d", found)
	}
}

// TestTryConstantQualifiedRefToReadyConstIsSilent covers the contrasting
// case: a qualified reference to the same constant must not be flagged.
func TestTryConstantQualifiedRefToReadyConstIsSilent(t *testing.T) {
	tree := decl.NewTree()
	fileScope := schema.NodeID(1)
	table := resolver.NewTable()
	declareFinishedUintConst(table, fileScope, "Answer", schema.NodeID(11), 7)

	r := resolver.NewScoped(table, fileScope)
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	st := newStructTranslator(tree, r, reporter, false)

	expr := &decl.ValueExpr{
		Kind: decl.ValueQualifiedRef,
		Ref:  decl.QualifiedName{Parts: []source.StringID{tree.Intern("Answer")}},
	}
	v, ok := st.values.tryConstant(expr, schema.Type{Kind: schema.UInt8})
	if !ok || v.UInt != 7 {
		t.Fatalf("expected the qualified reference to resolve to 7, got %+v ok=%v", v, ok)
	}

	for _, d := range bag.Items() {
		if d.Code == diag.ResMustBeQualified {
			t.Fatalf("qualified reference must not be flagged as needing qualification")
		}
	}
}
