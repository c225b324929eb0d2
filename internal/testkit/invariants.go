// Package testkit provides invariant-checking helpers shared across
// internal/layout and internal/translator test files.
package testkit

import (
	"fmt"

	"schemac/internal/schema"
)

// CheckStructBodyInvariants verifies the structural invariants of a
// translated StructBody: every field's offset fits within the declared
// data/pointer section sizes, and a present discriminant offset is itself
// within the data section.
func CheckStructBodyInvariants(body schema.StructBody) error {
	dataBits := uint32(body.DataWordCount) * 64
	pointerCount := uint32(body.PointerCount)

	for _, f := range body.Fields {
		if f.Variant == schema.FieldGroup {
			continue
		}
		if f.Type.Kind.IsPointer() {
			if f.Offset >= pointerCount {
				return fmt.Errorf("field %d: pointer offset %d exceeds pointer count %d", f.Ordinal, f.Offset, pointerCount)
			}
			continue
		}
		if f.Type.Kind == schema.Void {
			continue
		}
		width := uint32(1) << f.Type.Kind.LgSize()
		if f.Offset+width > dataBits {
			return fmt.Errorf("field %d: data offset %d (width %d bits) exceeds data section of %d bits", f.Ordinal, f.Offset, width, dataBits)
		}
	}

	if body.DiscriminantOffset != schema.NoDiscriminantOffset {
		discBit := uint32(body.DiscriminantOffset) * 16
		if discBit+16 > dataBits {
			return fmt.Errorf("discriminant offset %d exceeds data section of %d bits", body.DiscriminantOffset, dataBits)
		}
	}
	return nil
}

// CheckNodeIDsUnique verifies that a translated NodeSet's root and every
// group sub-node carry distinct ids: the group-id generator must never
// collide within one file's node set.
func CheckNodeIDsUnique(set schema.NodeSet) error {
	seen := make(map[schema.NodeID]bool, len(set.Groups)+1)
	seen[set.Root.ID] = true
	for _, g := range set.Groups {
		if seen[g.ID] {
			return fmt.Errorf("duplicate node id %d", g.ID)
		}
		seen[g.ID] = true
	}
	return nil
}

// CheckFieldsSorted verifies a translated StructBody's Fields are emitted
// in ascending code-order, the declaration order the traversal pass is
// required to preserve regardless of which ordinal each field carries.
func CheckFieldsSorted(body schema.StructBody) error {
	for i := 1; i < len(body.Fields); i++ {
		if body.Fields[i].CodeOrder < body.Fields[i-1].CodeOrder {
			return fmt.Errorf("fields out of code order at index %d: %d before %d", i, body.Fields[i-1].CodeOrder, body.Fields[i].CodeOrder)
		}
	}
	return nil
}
