// Package hashproxy adapts any key type down to the uint64 keys the root
// xorfilter package operates on. It owns the choice of hash function; the
// underlying filter never sees anything but the hashed values.
package hashproxy

import "github.com/go-probfilters/xorfilter"

// HashFunc maps a key of type K to the full 64-bit space the underlying
// filter indexes on. Two HashFuncs that happen to agree on every key in a
// given build are still distinct hash functions; Proxy never assumes
// otherwise beyond what HashID records for the caller's own bookkeeping.
type HashFunc[K any] func(key K) uint64

// BuildFunc constructs a concrete filter from already-hashed keys. The
// xorfilter.PopulateXor8/Fuse8/BinaryFuse8/... family all satisfy this once
// their variadic Options are bound with a closure, e.g.:
//
//	hashproxy.Build(keys, hashproxy.XXHashString, "xxhash", func(h []uint64) (xorfilter.Filter, *xorfilter.BuildError) {
//		return xorfilter.PopulateBinaryFuse8(h)
//	})
type BuildFunc func(hashedKeys []uint64) (xorfilter.Filter, *xorfilter.BuildError)

// Proxy wraps a Filter built over H(K) for some hash function H, exposing a
// Contains that takes K directly. HashID identifies which hash function was
// used to build the underlying filter; it plays no role in Contains, but
// lets a caller holding several Proxy values avoid mixing them up.
type Proxy[K any] struct {
	filter xorfilter.Filter
	hash   HashFunc[K]
	HashID string
}

// Build hashes every key with hash, builds the underlying filter via build,
// and returns a Proxy wrapping both. False positives of hash compound with
// those of the underlying filter; Build does not attempt to detect or
// correct for hash collisions among distinct keys in K.
func Build[K any](keys []K, hash HashFunc[K], hashID string, build BuildFunc) (*Proxy[K], *xorfilter.BuildError) {
	hashed := make([]uint64, len(keys))
	for i, k := range keys {
		hashed[i] = hash(k)
	}
	f, err := build(hashed)
	if err != nil {
		return nil, err
	}
	return &Proxy[K]{filter: f, hash: hash, HashID: hashID}, nil
}

// Contains reports whether key is probably a member of the set Build was
// called with. If two distinct keys k1, k2 hash to the same uint64 under
// the proxy's hash function, Contains necessarily returns the same answer
// for both.
func (p *Proxy[K]) Contains(key K) bool {
	return p.filter.Contains(p.hash(key))
}

// Len reports the number of keys the underlying filter was built for.
func (p *Proxy[K]) Len() int { return p.filter.Len() }
