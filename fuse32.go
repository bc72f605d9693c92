package xorfilter

import (
	"encoding/binary"
	"fmt"
)

// Fuse32 is a 32-bit-fingerprint Fuse filter: ε ≈ 1/2^32.
type Fuse32 struct {
	Seed              uint64
	SegmentLength     uint32
	SegmentLengthMask uint32
	SegmentCount      uint32

	Fingerprints []uint32

	size uint32
}

func (f *Fuse32) indices(hash uint64) (uint32, uint32, uint32) {
	return fuseIndices(hash, f.SegmentLength, f.SegmentLengthMask, f.SegmentCount)
}

// PopulateFuse32 builds a Fuse32 filter from keys. See PopulateFuse8 for
// the minimum-n caveat.
func PopulateFuse32(keys []uint64, opts ...Option) (*Fuse32, *BuildError) {
	cfg := resolveOptions(opts...)
	size := uint32(len(keys))

	segmentLength, segmentLengthMask, segmentCount, capacity, err := fuseSizing(size)
	if err != nil {
		return nil, newBuildError("Fuse32", ErrKindSizeOverflow, err, "sizing %d keys", size)
	}

	f := &Fuse32{
		SegmentLength:     segmentLength,
		SegmentLengthMask: segmentLengthMask,
		SegmentCount:      segmentCount,
		Fingerprints:      make([]uint32, capacity),
		size:              size,
	}
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
		return nil, newBuildError("Fuse32", ErrKindRetriesExceeded, ErrRetriesExceeded, "after %d attempts", cfg.maxIterations)
	}

	if cfg.uniformRandomFill {
		random := cfg.fillRandom(len(f.Fingerprints)*4, f.Seed)
		for i := range f.Fingerprints {
			f.Fingerprints[i] = binary.LittleEndian.Uint32(random[i*4 : i*4+4])
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		hash := order[i]
		fp := uint32(fingerprint(hash))
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
// set, with false positive probability ≈ 1/2^32.
func (f *Fuse32) Contains(key uint64) bool {
	if len(f.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, f.Seed)
	fp := uint32(fingerprint(hash))
	h0, h1, h2 := f.indices(hash)
	fp ^= f.Fingerprints[h0] ^ f.Fingerprints[h1] ^ f.Fingerprints[h2]
	return fp == 0
}

// Len reports the number of keys this filter was built for.
func (f *Fuse32) Len() int { return int(f.size) }

const fuse32Magic = "XOF1F32\x00"

// MarshalBinary encodes the filter's plain data layout, little-endian.
func (f *Fuse32) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8+8+4+4+4+4+len(f.Fingerprints)*4)
	copy(out[0:8], fuse32Magic)
	binary.LittleEndian.PutUint64(out[8:16], f.Seed)
	binary.LittleEndian.PutUint32(out[16:20], f.SegmentLength)
	binary.LittleEndian.PutUint32(out[20:24], f.SegmentCount)
	binary.LittleEndian.PutUint32(out[24:28], f.size)
	binary.LittleEndian.PutUint32(out[28:32], uint32(len(f.Fingerprints)))
	for i, v := range f.Fingerprints {
		binary.LittleEndian.PutUint32(out[32+i*4:36+i*4], v)
	}
	return out, nil
}

// UnmarshalBinary decodes a filter previously produced by MarshalBinary.
func (f *Fuse32) UnmarshalBinary(data []byte) error {
	if len(data) < 32 || string(data[0:8]) != fuse32Magic {
		return fmt.Errorf("xorfilter: Fuse32.UnmarshalBinary: bad header")
	}
	f.Seed = binary.LittleEndian.Uint64(data[8:16])
	f.SegmentLength = binary.LittleEndian.Uint32(data[16:20])
	if f.SegmentLength > 0 {
		f.SegmentLengthMask = f.SegmentLength - 1
	}
	f.SegmentCount = binary.LittleEndian.Uint32(data[20:24])
	f.size = binary.LittleEndian.Uint32(data[24:28])
	n := binary.LittleEndian.Uint32(data[28:32])
	if len(data) != 32+int(n)*4 {
		return fmt.Errorf("xorfilter: Fuse32.UnmarshalBinary: length mismatch")
	}
	f.Fingerprints = make([]uint32, n)
	for i := range f.Fingerprints {
		f.Fingerprints[i] = binary.LittleEndian.Uint32(data[32+i*4 : 36+i*4])
	}
	return nil
}
