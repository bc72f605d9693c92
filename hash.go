package xorfilter

import "math/bits"

// mix64 is the Murmur3 finalizer (fmix64): a 64-bit avalanche mixer used to
// spread a key+seed sum across the full output range before any index or
// fingerprint is derived from it.
func mix64(key uint64) uint64 {
	key = (key ^ (key >> 33)) * 0xff51afd7ed558ccd
	key = (key ^ (key >> 33)) * 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}

// mixsplit combines a key and the filter's seed, then runs it through the
// avalanche mixer. Every hash used by this package, for both construction
// and query, goes through mixsplit exactly once.
func mixsplit(key, seed uint64) uint64 {
	return mix64(key + seed)
}

// splitmix64 is the reference SplitMix64 generator, used to derive the
// seed-rotation schedule on peeling retries. It advances *state and returns
// one 64-bit output; calling it repeatedly from the same starting state
// always produces the same sequence, which is what makes seed rotation
// reproducible.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// fingerprint extracts the fingerprint bits from an already-mixed hash. The
// width is determined purely by which integer type the caller casts the
// result to (uint8/uint16/uint32), so a single function serves all nine
// variants.
func fingerprint(hash uint64) uint64 { return hash }

// reduce32 is the Lemire fast-range reduction: maps x uniformly into
// [0, n) using a single 64-bit multiply and a shift, replacing the much
// slower x % n on the query hot path.
func reduce32(x, n uint32) uint32 {
	return uint32((uint64(x) * uint64(n)) >> 32)
}

// rotl64 rotates x left by k bits (0 <= k < 64).
func rotl64(x uint64, k uint) uint64 {
	return bits.RotateLeft64(x, int(k))
}

// xorIndices derives the three disjoint-third indices used by the Xor
// family: split hash into three 32-bit slices via 0/21/42-bit rotation,
// reduce each modulo blockLength, and offset into one of three equal
// thirds of the table. The three results are pairwise distinct because
// each comes from a different, non-overlapping third.
func xorIndices(hash uint64, blockLength uint32) (uint32, uint32, uint32) {
	r0 := uint32(hash)
	r1 := uint32(rotl64(hash, 21))
	r2 := uint32(rotl64(hash, 42))
	h0 := reduce32(r0, blockLength)
	h1 := reduce32(r1, blockLength) + blockLength
	h2 := reduce32(r2, blockLength) + 2*blockLength
	return h0, h1, h2
}

// fuseIndices derives the three window indices used by the (non-binary)
// Fuse family: an anchor segment is chosen by reducing the high bits of
// hash modulo segmentCount, then all three indices are jittered within
// their own segment by independent bit slices of hash. Each jitter is
// masked to segmentLength-1, so it can never cross its own segment's
// boundary and the three indices stay pairwise distinct.
func fuseIndices(hash uint64, segmentLength, segmentLengthMask, segmentCount uint32) (uint32, uint32, uint32) {
	anchor := reduce32(uint32(hash>>32), segmentCount) * segmentLength
	h0 := anchor
	h1 := h0 + segmentLength
	h2 := h1 + segmentLength
	h0 ^= uint32(hash>>40) & segmentLengthMask
	h1 ^= uint32(hash>>18) & segmentLengthMask
	h2 ^= uint32(hash) & segmentLengthMask
	return h0, h1, h2
}

// binaryFuseIndices derives the three segment-aligned window indices used
// by the BinaryFuse family: the anchor is the high 64 bits of the 128-bit
// product hash*segmentCountLength (Lemire's multiply-high reduction,
// identical in spirit to reduce32 but over the full segment-count-length
// range), and the second/third indices are jittered the same way as Fuse.
func binaryFuseIndices(hash uint64, segmentLength, segmentLengthMask uint32, segmentCountLength uint32) (uint32, uint32, uint32) {
	hi, _ := bits.Mul64(hash, uint64(segmentCountLength))
	h0 := uint32(hi)
	h1 := h0 + segmentLength
	h2 := h1 + segmentLength
	h1 ^= uint32(hash>>18) & segmentLengthMask
	h2 ^= uint32(hash) & segmentLengthMask
	return h0, h1, h2
}
