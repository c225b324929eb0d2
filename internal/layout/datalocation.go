package layout

// DataLocation is a fixed data-section slot reserved for one discriminated
// union member's storage: an absolute position (Offset, in units of
// LgSize) and a capacity (LgSize, as a size class). Multiple union members
// of different primitive sizes can share the same DataLocation by
// overlapping within its envelope; DataLocationUsage tracks which part of
// that envelope is actually spoken for.
type DataLocation struct {
	Offset uint32
	LgSize uint8
}

// TryExpandTo grows d's envelope from its current size class to newLgSize
// by asking top to extend the underlying word region. On success d.Offset
// is rewritten in the new, coarser unit system.
func (d *DataLocation) TryExpandTo(top *Top, newLgSize uint8) bool {
	if newLgSize <= d.LgSize {
		return true
	}
	factor := newLgSize - d.LgSize
	if !top.TryExpandData(d.LgSize, d.Offset, factor) {
		return false
	}
	d.Offset >>= factor
	d.LgSize = newLgSize
	return true
}

// DataLocationUsage tracks how much of a DataLocation's envelope has been
// committed, and which sub-regions of the committed prefix are free holes.
type DataLocationUsage struct {
	IsUsed     bool
	LgSizeUsed uint8
	Holes      HoleSet
}

// SmallestHoleAtLeast reports the smallest free hole class >= lgSize
// currently available within the used prefix, without consuming it.
func (u *DataLocationUsage) SmallestHoleAtLeast(lgSize uint8) (class uint8, ok bool) {
	if !u.IsUsed || lgSize >= u.LgSizeUsed {
		return 0, false
	}
	return u.Holes.SmallestAtLeast(lgSize)
}

// AllocateFromHole consumes a hole of exactly lgSize from the used prefix,
// splitting a larger hole if no exact match is free.
func (u *DataLocationUsage) AllocateFromHole(lgSize uint8) (offset uint32, ok bool) {
	if !u.IsUsed || lgSize >= u.LgSizeUsed {
		return 0, false
	}
	return u.Holes.TryAllocate(lgSize)
}

// TryAllocateByExpanding grows the used prefix of loc to make room for a
// field of size lgSize when no internal hole can satisfy it, by doubling
// the prefix:
//
//   - If the location is entirely unused, the whole field is placed at
//     offset 0 and LgSizeUsed becomes lgSize directly (no doubling needed).
//   - Otherwise the prefix is doubled one size class at a time. Each
//     doubling step's new upper half becomes a hole at that class, except
//     the very last step, whose upper half (now exactly lgSize bits)
//     becomes the new field itself. This is why the final LgSizeUsed is
//     lgSize+1, not lgSize: the field occupies the top half of the last
//     doubling, with the bottom half (everything below) already spoken
//     for by the old prefix and the intermediate holes.
//
// Each doubling step may itself require the backing DataLocation to grow,
// which is asked of top.
func (u *DataLocationUsage) TryAllocateByExpanding(loc *DataLocation, top *Top, lgSize uint8) (offset uint32, ok bool) {
	if !u.IsUsed {
		if lgSize > loc.LgSize && !loc.TryExpandTo(top, lgSize) {
			return 0, false
		}
		u.IsUsed = true
		u.LgSizeUsed = lgSize
		return 0, true
	}
	if lgSize < u.LgSizeUsed {
		return 0, false
	}
	oldUsed := u.LgSizeUsed
	target := lgSize + 1
	if target > loc.LgSize && !loc.TryExpandTo(top, target) {
		return 0, false
	}
	u.Holes.AddHolesAtEnd(oldUsed, 1, lgSize)
	u.LgSizeUsed = target
	return 1, true
}
