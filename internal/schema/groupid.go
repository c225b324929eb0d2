package schema

// GenerateGroupID derives a synthetic node id for an anonymous group: a
// pure function of (parentID, fieldIndex) with no global state, so the same
// group always gets the same id across runs. It mixes the two inputs with a
// 64-bit FNV-style multiply-xor so that distinct (parentID, fieldIndex)
// pairs spread across the id space.
func GenerateGroupID(parentID uint64, fieldIndex uint32) uint64 {
	const fnvOffset uint64 = 14695981039346656037
	const fnvPrime uint64 = 1099511628211

	h := fnvOffset
	h ^= parentID
	h *= fnvPrime
	h ^= uint64(fieldIndex)
	h *= fnvPrime
	return h
}
