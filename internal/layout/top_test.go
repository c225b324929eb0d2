package layout

import "testing"

// TestTopWorkedExample reproduces the struct {u8 a; u64 b; u16 c; u32 d}
// sanity check: allocating in ordinal order a, b, c, d should place them
// at bit offsets 0, 64, 16, 32 and commit exactly two data words.
func TestTopWorkedExample(t *testing.T) {
	var top Top

	a := top.AddData(3) // u8
	b := top.AddData(6) // u64
	c := top.AddData(4) // u16
	d := top.AddData(5) // u32

	if a != 0 {
		t.Errorf("a = %d, want 0", a)
	}
	if c != 16 {
		t.Errorf("c = %d, want 16", c)
	}
	if d != 32 {
		t.Errorf("d = %d, want 32", d)
	}
	if b != 64 {
		t.Errorf("b = %d, want 64", b)
	}
	if top.DataWordCount != 2 {
		t.Errorf("DataWordCount = %d, want 2", top.DataWordCount)
	}
	if top.PointerCount != 0 {
		t.Errorf("PointerCount = %d, want 0", top.PointerCount)
	}
}

func TestTopReusesSmallestAdequateHole(t *testing.T) {
	var top Top
	top.AddData(3) // places an 8-bit field at offset 0, leaves 8/16/32 holes

	off := top.AddData(3) // a second 8-bit field should take the leftover byte
	if off != 8 {
		t.Fatalf("second 8-bit field at %d, want 8", off)
	}
	if top.DataWordCount != 1 {
		t.Fatalf("DataWordCount = %d, want 1 (no new word needed)", top.DataWordCount)
	}
}

func TestTopPointersAreIndependentOfData(t *testing.T) {
	var top Top
	top.AddData(3)
	p0 := top.AddPointer()
	p1 := top.AddPointer()
	if p0 != 0 || p1 != 1 {
		t.Fatalf("pointer indices = %d,%d want 0,1", p0, p1)
	}
	if top.PointerCount != 2 {
		t.Fatalf("PointerCount = %d, want 2", top.PointerCount)
	}
}
