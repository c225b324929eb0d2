package layout

import "fortio.org/safecast"

// Top is the root allocator for a struct's data and pointer sections. Its
// HoleSet records holes at absolute offsets from the start of the data
// section, so a hole left in an earlier word stays available after later
// words are committed; at most one hole per size class exists at a time.
type Top struct {
	DataWordCount uint16
	PointerCount  uint16
	Holes         HoleSet
}

// AddData allocates lgSize bits of data-section storage and returns their
// absolute bit offset from the start of the data section. It first tries
// to satisfy the request from an existing hole in any committed word;
// failing that, it commits a fresh word, places the field at its very
// start, and records the remainder of the word as a chain of holes.
func (t *Top) AddData(lgSize uint8) uint32 {
	if lgSize < holeClasses && t.DataWordCount > 0 {
		if off, ok := t.Holes.TryAllocate(lgSize); ok {
			return off * (1 << lgSize)
		}
	}
	wordIndex := t.DataWordCount
	newCount, err := safecast.Conv[uint16](int(t.DataWordCount) + 1)
	if err != nil {
		panic("layout: data section exceeds addressable word count")
	}
	t.DataWordCount = newCount
	if lgSize < holeClasses {
		t.Holes.AddHolesAtEnd(lgSize, uint32(wordIndex)<<(holeClasses-lgSize)+1, holeClasses)
	} else {
		invariant(lgSize == holeClasses, "AddData: size class %d exceeds one word", lgSize)
	}
	return uint32(wordIndex) * 64
}

// AddPointer allocates the next pointer-section slot and returns its index.
func (t *Top) AddPointer() uint32 {
	idx := t.PointerCount
	newCount, err := safecast.Conv[uint16](int(t.PointerCount) + 1)
	if err != nil {
		panic("layout: pointer section exceeds addressable slot count")
	}
	t.PointerCount = newCount
	return uint32(idx)
}

// TryExpandData attempts to grow a previously allocated data region, found
// at (lgSize, offset), offset counted in units of 2^lgSize bits from the
// start of the data section, by factor size classes,
// by absorbing its sibling holes. Used by DataLocation.TryExpandTo when a
// union member's storage needs to widen in place.
func (t *Top) TryExpandData(lgSize uint8, offset uint32, factor uint8) bool {
	if t.DataWordCount == 0 {
		return false
	}
	return t.Holes.TryExpand(lgSize, offset, factor)
}

// TryExpandDataTo grows the size of the field allocated at the start of
// the data section (offset 0) up to newLgSize, used when a group's
// scalar-widening rule applies: extend an existing allocation rather than
// start a new hole chain. It reports whether the expansion succeeded; on
// success the remaining holes are updated to reflect the new, smaller free
// remainder.
func (t *Top) TryExpandDataTo(oldLgSize, newLgSize uint8) bool {
	if newLgSize <= oldLgSize {
		return true
	}
	if t.DataWordCount == 0 {
		return false
	}
	factor := newLgSize - oldLgSize
	return t.Holes.TryExpand(oldLgSize, 0, factor)
}
