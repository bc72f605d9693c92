package xorfilter

import (
	"encoding/binary"
	"fmt"
)

// Xor16 is a 16-bit-fingerprint Xor filter: ε ≈ 1/65536.
type Xor16 struct {
	Seed        uint64
	BlockLength uint32

	Fingerprints []uint16

	size uint32
}

func (f *Xor16) indices(hash uint64) (uint32, uint32, uint32) {
	return xorIndices(hash, f.BlockLength)
}

// PopulateXor16 builds an Xor16 filter from keys. See PopulateXor8 for the
// duplicate-key caveat.
func PopulateXor16(keys []uint64, opts ...Option) (*Xor16, *BuildError) {
	cfg := resolveOptions(opts...)
	size := uint32(len(keys))

	blockLength, capacity, err := xorSizing(size)
	if err != nil {
		return nil, newBuildError("Xor16", ErrKindSizeOverflow, err, "sizing %d keys", size)
	}

	f := &Xor16{BlockLength: blockLength, Fingerprints: make([]uint16, capacity), size: size}
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
		return nil, newBuildError("Xor16", ErrKindRetriesExceeded, ErrRetriesExceeded, "after %d attempts", cfg.maxIterations)
	}

	if cfg.uniformRandomFill {
		random := cfg.fillRandom(len(f.Fingerprints)*2, f.Seed)
		for i := range f.Fingerprints {
			f.Fingerprints[i] = binary.LittleEndian.Uint16(random[i*2 : i*2+2])
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		hash := order[i]
		fp := uint16(fingerprint(hash))
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

// Contains reports whether key is probably a member of the filter's key
// set, with false positive probability ≈ 1/65536.
func (f *Xor16) Contains(key uint64) bool {
	if len(f.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, f.Seed)
	fp := uint16(fingerprint(hash))
	h0, h1, h2 := f.indices(hash)
	fp ^= f.Fingerprints[h0] ^ f.Fingerprints[h1] ^ f.Fingerprints[h2]
	return fp == 0
}

// Len reports the number of keys this filter was built for.
func (f *Xor16) Len() int { return int(f.size) }

const xor16Magic = "XOF1X16\x00"

// MarshalBinary encodes the filter's plain data layout, little-endian.
func (f *Xor16) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8+8+4+4+4+len(f.Fingerprints)*2)
	copy(out[0:8], xor16Magic)
	binary.LittleEndian.PutUint64(out[8:16], f.Seed)
	binary.LittleEndian.PutUint32(out[16:20], f.BlockLength)
	binary.LittleEndian.PutUint32(out[20:24], f.size)
	binary.LittleEndian.PutUint32(out[24:28], uint32(len(f.Fingerprints)))
	for i, v := range f.Fingerprints {
		binary.LittleEndian.PutUint16(out[28+i*2:30+i*2], v)
	}
	return out, nil
}

// UnmarshalBinary decodes a filter previously produced by MarshalBinary.
func (f *Xor16) UnmarshalBinary(data []byte) error {
	if len(data) < 28 || string(data[0:8]) != xor16Magic {
		return fmt.Errorf("xorfilter: Xor16.UnmarshalBinary: bad header")
	}
	f.Seed = binary.LittleEndian.Uint64(data[8:16])
	f.BlockLength = binary.LittleEndian.Uint32(data[16:20])
	f.size = binary.LittleEndian.Uint32(data[20:24])
	n := binary.LittleEndian.Uint32(data[24:28])
	if len(data) != 28+int(n)*2 {
		return fmt.Errorf("xorfilter: Xor16.UnmarshalBinary: length mismatch")
	}
	f.Fingerprints = make([]uint16, n)
	for i := range f.Fingerprints {
		f.Fingerprints[i] = binary.LittleEndian.Uint16(data[28+i*2 : 30+i*2])
	}
	return nil
}
