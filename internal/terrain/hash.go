package terrain

// hash32 finalizes a 32-bit value with a multiply-xor avalanche so nearby
// inputs land far apart.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 mixes a seed with a 2D integer coordinate into a uniform 32-bit
// value. Deterministic: equal inputs always produce equal outputs.
func hash2(seed uint32, x, y int) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return hash32(h)
}

// hashUnit maps a seeded coordinate hash onto [0, 1).
func hashUnit(seed uint32, x, y int) float64 {
	return float64(hash2(seed, x, y)) * (1.0 / 4294967296.0)
}
