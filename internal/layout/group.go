package layout

// Group is the field-placement scope for one struct or group body. It
// allocates from a single Top shared by the whole enclosing struct, so a
// group's fields land in the same data/pointer sections as their parent's,
// at offsets that never collide with already-placed siblings.
//
// A group used inside a union (parent != nil) tracks its own view of the
// union's allocation state. dataUsage mirrors parent.DataLocations index
// for index, but every entry starts unused regardless of whether some
// other group sharing the same union has already claimed that location.
// That is what lets two different groups' fields overlap at a shared
// location, the entire point of a union, while two fields placed through
// the same group still land disjointly.
type Group struct {
	Top    *Top
	parent *Union

	dataUsage      []DataLocationUsage
	pointerClaimed int
}

// NewGroup returns a Group allocating out of top. parent is the union this
// group's fields are variants of, or nil for a group that sits directly in
// a struct.
func NewGroup(top *Top, parent *Union) *Group {
	return &Group{Top: top, parent: parent}
}

// AddData allocates lgSize bits for a data field of this group and
// returns its absolute bit offset. In a group over a union it places the
// field through AddUnionData; otherwise Top.AddData applies the
// best-fit-then-extend rule: reuse the smallest adequate hole, or else
// open a new word and hole out its remainder.
func (g *Group) AddData(lgSize uint8) uint32 {
	if g.parent != nil {
		return g.AddUnionData(lgSize)
	}
	return g.Top.AddData(lgSize)
}

// AddVoidData returns the fixed offset used for a Void-typed field. Void
// occupies no storage, so unlike every other case this must not touch the
// hole set at all: a group made entirely of Void members still needs a
// deterministic, side-effect-free offset for each of them.
func (g *Group) AddVoidData() uint32 {
	return 0
}

// AddPointer allocates a pointer-section slot for a pointer field of this
// group: through AddUnionPointer in a group over a union, otherwise the
// next slot of the Top.
func (g *Group) AddPointer() uint32 {
	if g.parent != nil {
		return g.AddUnionPointer()
	}
	return g.Top.AddPointer()
}

// AddUnionData places a union-branch data field of size lgSize into this
// group's union. It first scans every location the union currently has
// (including ones claimed only by some other group, which this group
// still sees as unused) for the smallest existing hole that fits, and
// allocates from that one location; a tie between two locations with an
// equally small hole picks the lower index. Only when no location has a
// usable hole does it fall back to expanding a location in place, then to
// minting a brand-new location.
func (g *Group) AddUnionData(lgSize uint8) uint32 {
	u := g.parent
	invariant(u != nil, "AddUnionData called on a group with no union")
	g.growDataUsage(len(u.DataLocations))

	best := -1
	var bestClass uint8
	for i := range u.DataLocations {
		class, ok := g.dataUsage[i].SmallestHoleAtLeast(lgSize)
		if !ok {
			continue
		}
		if best < 0 || class < bestClass {
			best = i
			bestClass = class
		}
	}
	if best >= 0 {
		off, ok := g.dataUsage[best].AllocateFromHole(lgSize)
		invariant(ok, "SmallestHoleAtLeast reported a hole AllocateFromHole could not take")
		return u.absoluteOffset(best, lgSize, off)
	}

	for i := range u.DataLocations {
		loc := &u.DataLocations[i]
		if off, ok := g.dataUsage[i].TryAllocateByExpanding(loc, u.top, lgSize); ok {
			return u.absoluteOffset(i, lgSize, off)
		}
	}

	locIndex, bitOffset := u.AddNewDataLocation(lgSize)
	g.growDataUsage(locIndex + 1)
	g.dataUsage[locIndex] = DataLocationUsage{IsUsed: true, LgSizeUsed: lgSize}
	return bitOffset
}

// growDataUsage extends dataUsage with zero-value (unused) entries so it
// covers every location the union currently has.
func (g *Group) growDataUsage(n int) {
	for len(g.dataUsage) < n {
		g.dataUsage = append(g.dataUsage, DataLocationUsage{})
	}
}

// AddUnionPointer reserves a pointer-section slot for a union-branch
// pointer field. It reuses the slot at this group's own claim count when
// the union already has one there, since another group may have minted it
// and pointer slots have no sub-word structure to keep separate, and only
// mints a new one once this group has claimed every slot the union has.
func (g *Group) AddUnionPointer() uint32 {
	u := g.parent
	invariant(u != nil, "AddUnionPointer called on a group with no union")

	if g.pointerClaimed < len(u.PointerLocations) {
		idx := u.PointerLocations[g.pointerClaimed]
		g.pointerClaimed++
		return idx
	}
	idx := u.AddNewPointerLocation()
	g.pointerClaimed++
	return idx
}
