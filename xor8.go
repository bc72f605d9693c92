package xorfilter

import (
	"encoding/binary"
	"fmt"
)

// Xor8 is an 8-bit-fingerprint Xor filter: ε ≈ 1/256, the original
// geometry from Graf & Lemire (2019) — three disjoint thirds of a table
// sized at roughly 1.23n + 32 slots.
type Xor8 struct {
	Seed        uint64
	BlockLength uint32

	Fingerprints []uint8

	size uint32
}

func (f *Xor8) indices(hash uint64) (uint32, uint32, uint32) {
	return xorIndices(hash, f.BlockLength)
}

// PopulateXor8 builds an Xor8 filter from keys. The caller must ensure keys
// contains no duplicates; construction with duplicates will exhaust the
// retry budget and return a BuildError of kind ErrKindRetriesExceeded.
func PopulateXor8(keys []uint64, opts ...Option) (*Xor8, *BuildError) {
	cfg := resolveOptions(opts...)
	size := uint32(len(keys))

	blockLength, capacity, err := xorSizing(size)
	if err != nil {
		return nil, newBuildError("Xor8", ErrKindSizeOverflow, err, "sizing %d keys", size)
	}

	f := &Xor8{BlockLength: blockLength, Fingerprints: make([]uint8, capacity), size: size}
	if size == 0 {
		return f, nil
	}

	seedState := cfg.seed
	if !cfg.hasSeed {
		seedState = 1
	}
	f.Seed = splitmix64(&seedState)

	H := make([]xorSet, capacity)
	alone := make([]uint32, capacity)

	var order []uint64
	var slot []uint8
	ok := false
	for attempt := 0; attempt < cfg.maxIterations; attempt++ {
		order, slot, ok = peelHypergraph(keys, f.Seed, capacity, f.indices, H, alone)
		if ok {
			break
		}
		f.Seed = splitmix64(&seedState)
	}
	if !ok {
		return nil, newBuildError("Xor8", ErrKindRetriesExceeded, ErrRetriesExceeded, "after %d attempts", cfg.maxIterations)
	}

	if cfg.uniformRandomFill {
		fillXorFingerprints8(f.Fingerprints, cfg, f.Seed)
	}

	for i := len(order) - 1; i >= 0; i-- {
		hash := order[i]
		fp := uint8(fingerprint(hash))
		i0, i1, i2 := f.indices(hash)
		switch slot[i] {
		case 0:
			f.Fingerprints[i0] = fp ^ f.Fingerprints[i1] ^ f.Fingerprints[i2]
		case 1:
			f.Fingerprints[i1] = fp ^ f.Fingerprints[i0] ^ f.Fingerprints[i2]
		default:
			f.Fingerprints[i2] = fp ^ f.Fingerprints[i0] ^ f.Fingerprints[i1]
		}
	}

	return f, nil
}

func fillXorFingerprints8(fp []uint8, cfg *buildConfig, seed uint64) {
	random := cfg.fillRandom(len(fp), seed)
	copy(fp, random)
}

// Contains reports whether key is probably a member of the filter's key
// set, with false positive probability ≈ 1/256.
func (f *Xor8) Contains(key uint64) bool {
	if len(f.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, f.Seed)
	fp := uint8(fingerprint(hash))
	h0, h1, h2 := f.indices(hash)
	fp ^= f.Fingerprints[h0] ^ f.Fingerprints[h1] ^ f.Fingerprints[h2]
	return fp == 0
}

// Len reports the number of keys this filter was built for.
func (f *Xor8) Len() int { return int(f.size) }

const xor8Magic = "XOF1X8\x00\x00"

// MarshalBinary encodes the filter's plain data layout: magic, seed, block
// length, key count, and the fingerprint array, all little-endian. There
// is no cross-language format contract beyond round-tripping through
// UnmarshalBinary.
func (f *Xor8) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8+8+4+4+4+len(f.Fingerprints))
	copy(out[0:8], xor8Magic)
	binary.LittleEndian.PutUint64(out[8:16], f.Seed)
	binary.LittleEndian.PutUint32(out[16:20], f.BlockLength)
	binary.LittleEndian.PutUint32(out[20:24], f.size)
	binary.LittleEndian.PutUint32(out[24:28], uint32(len(f.Fingerprints)))
	copy(out[28:], f.Fingerprints)
	return out, nil
}

// UnmarshalBinary decodes a filter previously produced by MarshalBinary.
func (f *Xor8) UnmarshalBinary(data []byte) error {
	if len(data) < 28 || string(data[0:8]) != xor8Magic {
		return fmt.Errorf("xorfilter: Xor8.UnmarshalBinary: bad header")
	}
	seed := binary.LittleEndian.Uint64(data[8:16])
	blockLength := binary.LittleEndian.Uint32(data[16:20])
	size := binary.LittleEndian.Uint32(data[20:24])
	n := binary.LittleEndian.Uint32(data[24:28])
	if len(data) != 28+int(n) {
		return fmt.Errorf("xorfilter: Xor8.UnmarshalBinary: length mismatch")
	}
	f.Seed = seed
	f.BlockLength = blockLength
	f.size = size
	f.Fingerprints = make([]uint8, n)
	copy(f.Fingerprints, data[28:])
	return nil
}
