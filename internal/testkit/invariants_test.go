package testkit

import (
	"testing"

	"schemac/internal/schema"
)

func TestCheckStructBodyInvariantsCatchesOutOfBoundsOffset(t *testing.T) {
	body := schema.StructBody{
		DataWordCount:      1,
		DiscriminantOffset: schema.NoDiscriminantOffset,
		Fields: []schema.Field{
			{Ordinal: 0, Variant: schema.FieldRegular, Type: schema.Primitive(schema.UInt64), Offset: 64},
		},
	}
	if err := CheckStructBodyInvariants(body); err == nil {
		t.Fatal("expected an out-of-bounds offset to be rejected")
	}
}

func TestCheckStructBodyInvariantsAcceptsWellFormedBody(t *testing.T) {
	body := schema.StructBody{
		DataWordCount:      1,
		DiscriminantOffset: schema.NoDiscriminantOffset,
		Fields: []schema.Field{
			{Ordinal: 0, Variant: schema.FieldRegular, Type: schema.Primitive(schema.UInt8), Offset: 0},
			{Ordinal: 1, Variant: schema.FieldRegular, Type: schema.Primitive(schema.UInt16), Offset: 16},
		},
	}
	if err := CheckStructBodyInvariants(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckNodeIDsUniqueCatchesCollision(t *testing.T) {
	set := schema.NodeSet{
		Root:   schema.Node{ID: 1},
		Groups: []schema.Node{{ID: 2}, {ID: 1}},
	}
	if err := CheckNodeIDsUnique(set); err == nil {
		t.Fatal("expected a duplicate node id to be rejected")
	}
}

func TestCheckFieldsSortedCatchesOutOfOrderCodeOrder(t *testing.T) {
	body := schema.StructBody{
		Fields: []schema.Field{
			{CodeOrder: 1},
			{CodeOrder: 0},
		},
	}
	if err := CheckFieldsSorted(body); err == nil {
		t.Fatal("expected out-of-order code order to be rejected")
	}
}
