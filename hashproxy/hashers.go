package hashproxy

import "github.com/cespare/xxhash/v2"

// XXHashString is a HashFunc[string] backed by xxhash, the idiomatic choice
// of non-cryptographic 64-bit hash for this purpose.
func XXHashString(key string) uint64 { return xxhash.Sum64String(key) }

// XXHashBytes is a HashFunc[[]byte] backed by xxhash.
func XXHashBytes(key []byte) uint64 { return xxhash.Sum64(key) }
