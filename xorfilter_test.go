package xorfilter_test

import "math/rand"

// distinctKeys returns n pairwise-distinct uint64s drawn from a
// deterministically seeded generator, so tests that build a filter from
// them are reproducible across runs.
func distinctKeys(seed int64, n int) []uint64 {
	r := rand.New(rand.NewSource(seed))
	seen := make(map[uint64]bool, n)
	keys := make([]uint64, 0, n)
	for len(keys) < n {
		k := r.Uint64()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}
