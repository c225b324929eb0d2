package layout

// Union is the shared allocation pool backing one discriminated union's
// member fields. Its DataLocations are reused across branches: two
// members that can never both be set at once are allowed to overlap, so
// a union with branches of differing primitive size still claims only as
// much data-section space as its largest branch needs.
//
// Union only owns the shared envelope: the list of locations that exist
// and how big each currently is. How much of a given location is spoken
// for is tracked per-Group (see Group.dataUsage), since two different
// groups reusing the same location must each see it as unused
// independently of the other.
type Union struct {
	top *Top

	DataLocations    []DataLocation
	PointerLocations []uint32
}

// NewUnion returns a Union whose allocations are drawn from top.
func NewUnion(top *Top) *Union {
	return &Union{top: top}
}

// AddNewDataLocation reserves a brand-new data location of size lgSize
// directly from the struct's data section (bypassing any existing,
// possibly smaller, union locations). It returns the location's index
// within the union and the field's absolute bit offset; marking the
// location used is the calling group's responsibility.
func (u *Union) AddNewDataLocation(lgSize uint8) (locIndex int, bitOffset uint32) {
	bitOffset = u.top.AddData(lgSize)
	loc := DataLocation{Offset: bitOffset >> lgSize, LgSize: lgSize}
	u.DataLocations = append(u.DataLocations, loc)
	return len(u.DataLocations) - 1, bitOffset
}

// AddNewPointerLocation reserves a new pointer-section slot for the union
// and returns its index.
func (u *Union) AddNewPointerLocation() uint32 {
	idx := u.top.AddPointer()
	u.PointerLocations = append(u.PointerLocations, idx)
	return idx
}

func (u *Union) absoluteOffset(locIndex int, lgSize uint8, localOffset uint32) uint32 {
	loc := u.DataLocations[locIndex]
	invariant(loc.LgSize >= lgSize, "union location %d shrank below field size", locIndex)
	// loc.Offset is in units of loc.LgSize; rebase to units of lgSize, then
	// add the local offset within that envelope.
	baseOffset := loc.Offset << (loc.LgSize - lgSize)
	return (baseOffset + localOffset) << lgSize
}
