package layout

import "testing"

func TestUnionAddNewDataLocationPacksFromTop(t *testing.T) {
	var top Top
	u := NewUnion(&top)

	_, off0 := u.AddNewDataLocation(3) // an 8-bit branch
	if off0 != 0 {
		t.Fatalf("first location offset = %d, want 0", off0)
	}
	idx1, off1 := u.AddNewDataLocation(5) // a second, unrelated 32-bit branch
	if idx1 != 1 {
		t.Fatalf("second location index = %d, want 1", idx1)
	}
	if off1 == off0 {
		t.Fatalf("two distinct AddNewDataLocation calls must not share an offset")
	}
	if len(u.DataLocations) != 2 {
		t.Fatalf("DataLocations = %d, want 2", len(u.DataLocations))
	}
}

func TestUnionAddNewPointerLocationAppends(t *testing.T) {
	var top Top
	u := NewUnion(&top)

	idx0 := u.AddNewPointerLocation()
	idx1 := u.AddNewPointerLocation()
	if idx0 == idx1 {
		t.Fatalf("two pointer locations must not share a slot: %d == %d", idx0, idx1)
	}
	if len(u.PointerLocations) != 2 {
		t.Fatalf("PointerLocations = %d, want 2", len(u.PointerLocations))
	}
}
