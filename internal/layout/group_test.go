package layout

import "testing"

func TestGroupVoidDataDoesNotConsumeSpace(t *testing.T) {
	var top Top
	g := NewGroup(&top, nil)

	off := g.AddVoidData()
	if off != 0 {
		t.Fatalf("void offset = %d, want 0", off)
	}
	if top.DataWordCount != 0 {
		t.Fatalf("DataWordCount = %d, want 0 after a void field", top.DataWordCount)
	}
	if !top.Holes.IsEmpty() {
		t.Fatalf("void field must not register any hole")
	}
}

func TestGroupSharesTopWithParentStruct(t *testing.T) {
	var top Top
	g := NewGroup(&top, nil)

	off := g.AddData(3)
	if off != 0 {
		t.Fatalf("first field offset = %d, want 0", off)
	}
	if top.DataWordCount != 1 {
		t.Fatalf("DataWordCount = %d, want 1", top.DataWordCount)
	}
}

// Two fields placed through the same group must never overlap, even when
// they share a union: both could never be the one live branch in
// isolation, since within one group they are simultaneously present.
func TestGroupUnionDataWithinOneGroupIsDisjoint(t *testing.T) {
	var top Top
	u := NewUnion(&top)
	g := NewGroup(&top, u)

	off0 := g.AddUnionData(3)
	off1 := g.AddUnionData(3)
	if off0 == off1 {
		t.Fatalf("two fields in the same group must land disjointly, both got %d", off0)
	}
	if len(u.DataLocations) != 1 {
		t.Fatalf("DataLocations = %d, want 1 (grown in place, not a second location)", len(u.DataLocations))
	}
}

// Two different groups placing fields into the same union must overlap,
// since a union's branches are mutually exclusive: only one of them is
// ever live. This is the worked example of a union holding a u16, a u32,
// and a Text, where the u16 and u32 branches share the same base offset.
func TestGroupUnionDataAcrossGroupsOverlaps(t *testing.T) {
	var top Top
	u := NewUnion(&top)

	x := NewGroup(&top, u)
	offX := x.AddUnionData(4) // u16

	y := NewGroup(&top, u)
	offY := y.AddUnionData(5) // u32, needs the location to grow to fit

	if offX != offY {
		t.Fatalf("branches from different groups must overlap: u16 at %d, u32 at %d", offX, offY)
	}
	if len(u.DataLocations) != 1 {
		t.Fatalf("DataLocations = %d, want 1 (one shared location, not one per group)", len(u.DataLocations))
	}

	z := NewGroup(&top, u)
	offZ := z.AddUnionPointer() // Text
	if offZ != u.PointerLocations[0] {
		t.Fatalf("first pointer-branch group should claim the union's first pointer slot")
	}
}

func TestGroupUnionPointerReusesSlotAcrossGroups(t *testing.T) {
	var top Top
	u := NewUnion(&top)

	g1 := NewGroup(&top, u)
	idx0 := g1.AddUnionPointer()

	g2 := NewGroup(&top, u)
	idx1 := g2.AddUnionPointer()

	if idx0 != idx1 {
		t.Fatalf("a second group's first pointer branch should reuse the first group's slot: %d != %d", idx0, idx1)
	}
	if len(u.PointerLocations) != 1 {
		t.Fatalf("PointerLocations = %d, want 1 (shared, not one per group)", len(u.PointerLocations))
	}
}

// With two union data locations each offering a hole of a different size,
// the group must pick the smaller qualifying hole even when it sits at
// the higher-indexed location, rather than taking the first location that
// has any hole at all.
func TestGroupUnionDataPicksSmallestQualifyingHole(t *testing.T) {
	var top Top
	u := NewUnion(&top)
	u.DataLocations = []DataLocation{
		{Offset: 0, LgSize: 5}, // location 0: envelope bits [0, 32)
		{Offset: 2, LgSize: 4}, // location 1: envelope bits [32, 48)
	}

	g := NewGroup(&top, u)
	g.dataUsage = make([]DataLocationUsage, 2)
	g.dataUsage[0] = DataLocationUsage{IsUsed: true, LgSizeUsed: 4}
	g.dataUsage[0].Holes.entries[4] = 1 // one 16-bit hole: class 4

	g.dataUsage[1] = DataLocationUsage{IsUsed: true, LgSizeUsed: 4}
	g.dataUsage[1].Holes.entries[3] = 1 // one 8-bit hole: class 3, smaller

	off := g.AddUnionData(3) // an 8-bit field fits either hole
	if off != 40 {
		t.Fatalf("AddUnionData(3) = %d, want 40 (location 1's smaller hole, not location 0's)", off)
	}
	if g.dataUsage[1].Holes.entries[3] != 0 {
		t.Fatalf("location 1's hole should have been consumed")
	}
	if g.dataUsage[0].Holes.entries[4] != 1 {
		t.Fatalf("location 0's hole must be left untouched")
	}
}

func TestGroupUnionPointerWithinOneGroupIsDisjoint(t *testing.T) {
	var top Top
	u := NewUnion(&top)
	g := NewGroup(&top, u)

	idx0 := g.AddUnionPointer()
	idx1 := g.AddUnionPointer()
	if idx0 == idx1 {
		t.Fatalf("two pointer fields in the same group must claim distinct slots, both got %d", idx0)
	}
	if len(u.PointerLocations) != 2 {
		t.Fatalf("PointerLocations = %d, want 2", len(u.PointerLocations))
	}
}
