package xorfilter

// Filter is satisfied by every filter type this package produces:
// Xor8/16/32, Fuse8/16/32, and BinaryFuse8/16/32. It lets callers (notably
// the hashproxy package) work against "a filter" without committing to one
// concrete fingerprint width or family.
type Filter interface {
	// Contains reports whether key is probably a member of the set the
	// filter was built from. It never returns false for a key that was
	// present at construction time, and returns true for an absent key
	// with probability roughly 2^-f.
	Contains(key uint64) bool
	// Len reports the number of keys the filter was built for, as given
	// to Populate. It is not reverified against Fingerprints.
	Len() int
}
