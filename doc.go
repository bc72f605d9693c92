// Package xorfilter implements Xor, Fuse, and Binary Fuse probabilistic
// set-membership filters, after Graf & Lemire, "Xor Filters: Faster and
// Smaller Than Bloom and Cuckoo Filters" (2019) and the binary fuse filter
// that succeeded it.
//
// A filter is built once from a complete, duplicate-free set of uint64 keys
// and answers Contains(key) with no false negatives and a false-positive
// rate of roughly 2⁻ᶠ, where f is the fingerprint width (8, 16, or 32 bits).
// Nine concrete types are provided:
//
//	Xor8, Xor16, Xor32
//	Fuse8, Fuse16, Fuse32
//	BinaryFuse8, BinaryFuse16, BinaryFuse32
//
// Construction (Populate) is the only nontrivial part of this package: it
// hashes every key into three table slots, peels the resulting hypergraph
// in reverse dependency order, and back-assigns fingerprints so that the
// XOR of a key's three slots equals its fingerprint. Construction retries
// with a new seed on peeling failure, up to a configurable cap.
//
// Once built, a filter is immutable and safe for concurrent read access
// from multiple goroutines without any locking. Populate is not safe to
// call concurrently against the same slice of working memory, but building
// independent filters concurrently is fine.
//
// For keys that are not already uint64 (strings, structs, etc.), see the
// hashproxy subpackage.
package xorfilter
