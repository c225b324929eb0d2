// Package layout implements the struct bit-layout allocator: packing data
// fields into as few 64-bit words as possible and pointer fields into a
// contiguous pointer section, while letting discriminated union branches
// share storage. HoleSet tracks reusable sub-word gaps, Top owns the
// word/pointer counters for one struct, Union pools locations shared by a
// discriminant's branches, and Group is the per-scope placement front end
// that a translator walks a member tree through.
package layout
