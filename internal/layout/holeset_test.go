package layout

import "testing"

func TestHoleSetTryAllocateSplitsLargerHole(t *testing.T) {
	var h HoleSet
	h.entries[5] = 1 // a free 32-bit hole at offset 1 (bits [32,64))

	off, ok := h.TryAllocate(3) // ask for 8 bits
	if !ok {
		t.Fatalf("expected allocation to succeed")
	}
	if off != 4 {
		t.Fatalf("offset = %d, want 4", off) // 1*2=2 at lg4, 2*2=4 at lg3
	}
	if h.entries[3] != 5 {
		t.Fatalf("leftover 8-bit hole at %d, want 5", h.entries[3])
	}
	if h.entries[4] != 3 {
		t.Fatalf("leftover 16-bit hole at %d, want 3", h.entries[4])
	}
	if h.entries[5] != 0 {
		t.Fatalf("32-bit class should be empty after the cascade split")
	}
}

func TestHoleSetTryAllocateNoHole(t *testing.T) {
	var h HoleSet
	if _, ok := h.TryAllocate(2); ok {
		t.Fatalf("expected no hole to be available")
	}
}

func TestHoleSetTryAllocateWholeWordRejected(t *testing.T) {
	var h HoleSet
	h.entries[5] = 1
	if _, ok := h.TryAllocate(6); ok {
		t.Fatalf("size class 6 (a whole word) must never be satisfied by a HoleSet")
	}
}

func TestHoleSetAddHolesAtEnd(t *testing.T) {
	var h HoleSet
	h.AddHolesAtEnd(3, 1, 6)
	if h.entries[3] != 1 || h.entries[4] != 1 || h.entries[5] != 1 {
		t.Fatalf("entries = %v, want [_,_,_,1,1,1]", h.entries)
	}
}

func TestHoleSetTryExpandChain(t *testing.T) {
	var h HoleSet
	h.AddHolesAtEnd(3, 1, 6)

	if !h.TryExpand(3, 0, 1) {
		t.Fatalf("expected the 8-bit field at offset 0 to absorb its sibling hole")
	}
	if h.entries[3] != 0 {
		t.Fatalf("8-bit hole should have been consumed")
	}
	// The 16-bit region at offset 0 should now be able to absorb the next
	// sibling, growing to 32 bits.
	if !h.TryExpand(4, 0, 1) {
		t.Fatalf("expected the 16-bit region to absorb its sibling hole")
	}
	if h.entries[4] != 0 {
		t.Fatalf("16-bit hole should have been consumed")
	}
	if h.entries[5] != 1 {
		t.Fatalf("32-bit hole should remain untouched")
	}
}

func TestHoleSetTryExpandFailsWithoutSibling(t *testing.T) {
	var h HoleSet
	if h.TryExpand(3, 0, 1) {
		t.Fatalf("expansion should fail when no sibling hole is recorded")
	}
}

func TestHoleSetFirstWordUsed(t *testing.T) {
	var h HoleSet
	if got := h.FirstWordUsed(); got != 6 {
		t.Fatalf("empty hole set: FirstWordUsed() = %d, want 6", got)
	}

	h.entries[5] = 1
	if got := h.FirstWordUsed(); got != 5 {
		t.Fatalf("with a 32-bit tail hole: FirstWordUsed() = %d, want 5", got)
	}

	h.entries[4] = 1
	if got := h.FirstWordUsed(); got != 4 {
		t.Fatalf("with 16- and 32-bit tail holes: FirstWordUsed() = %d, want 4", got)
	}
}

func TestHoleSetSmallestAtLeast(t *testing.T) {
	var h HoleSet
	h.entries[4] = 1
	class, ok := h.SmallestAtLeast(2)
	if !ok || class != 4 {
		t.Fatalf("SmallestAtLeast(2) = (%d,%v), want (4,true)", class, ok)
	}
	if _, ok := h.SmallestAtLeast(5); ok {
		t.Fatalf("SmallestAtLeast(5) should find nothing")
	}
}
