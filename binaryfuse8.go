package xorfilter

import (
	"encoding/binary"
	"fmt"
)

// BinaryFuse8 is an 8-bit-fingerprint Binary Fuse filter: the modern
// default geometry, segment-aligned for better cache locality than Xor's
// disjoint thirds, with a table of at least 1.125n slots (more for small n,
// see calculateBinaryFuseSizeFactor), smaller than Xor's ≈1.23n.
type BinaryFuse8 struct {
	Seed               uint64
	SegmentLength      uint32
	SegmentLengthMask  uint32
	SegmentCount       uint32
	SegmentCountLength uint32

	Fingerprints []uint8

	size uint32
}

func (f *BinaryFuse8) indices(hash uint64) (uint32, uint32, uint32) {
	return binaryFuseIndices(hash, f.SegmentLength, f.SegmentLengthMask, f.SegmentCountLength)
}

// mod3 maps {0,1,2,3,4} -> {0,1,2,0,1}, used to recover which of the three
// index slots an already-peeled slot's other two indices occupy without a
// branch table.
func mod3(x uint8) uint8 {
	if x > 2 {
		x -= 3
	}
	return x
}

// PopulateBinaryFuse8 builds a BinaryFuse8 filter from keys. The caller
// must ensure keys contains no duplicates; construction with duplicates
// will exhaust the retry budget and return a BuildError of kind
// ErrKindRetriesExceeded.
//
// This uses the bit-packed peeling strategy from the reference
// implementation: the low 2 bits of each t2count cell record which of the
// three index slots (0, 1, or 2) a slot's still-outstanding key occupies,
// so peeling never needs to re-derive a key's indices to find out which
// slot it was popped from.
func PopulateBinaryFuse8(keys []uint64, opts ...Option) (*BinaryFuse8, *BuildError) {
	cfg := resolveOptions(opts...)
	size := uint32(len(keys))

	segmentLength, segmentLengthMask, segmentCount, segmentCountLength, capacity, err := binaryFuseSizing(size)
	if err != nil {
		return nil, newBuildError("BinaryFuse8", ErrKindSizeOverflow, err, "sizing %d keys", size)
	}

	f := &BinaryFuse8{
		SegmentLength:      segmentLength,
		SegmentLengthMask:  segmentLengthMask,
		SegmentCount:       segmentCount,
		SegmentCountLength: segmentCountLength,
		Fingerprints:       make([]uint8, capacity),
		size:               size,
	}
	if size == 0 {
		return f, nil
	}

	seedState := cfg.seed
	if !cfg.hasSeed {
		seedState = 1
	}
	f.Seed = splitmix64(&seedState)

	alone := make([]uint32, capacity)
	t2count := make([]uint8, capacity)
	t2hash := make([]uint64, capacity)
	reverseOrder := make([]uint64, size+1)
	reverseOrder[size] = 1
	reverseH := make([]uint8, size)
	var h012 [6]uint32

	ok := false
	for attempt := 0; attempt < cfg.maxIterations; attempt++ {
		blockBits := 1
		for (1 << blockBits) < int(f.SegmentCount) {
			blockBits++
		}
		startPos := make([]uint, 1<<blockBits)
		for i := range startPos {
			startPos[i] = (uint(i) * uint(size)) >> blockBits
		}
		for _, key := range keys {
			hash := mixsplit(key, f.Seed)
			segmentIndex := hash >> (64 - blockBits)
			for reverseOrder[startPos[segmentIndex]] != 0 {
				segmentIndex++
				segmentIndex &= (1 << blockBits) - 1
			}
			reverseOrder[startPos[segmentIndex]] = hash
			startPos[segmentIndex]++
		}

		for i := uint32(0); i < size; i++ {
			hash := reverseOrder[i]
			i0, i1, i2 := f.indices(hash)
			t2count[i0] += 4
			t2hash[i0] ^= hash
			t2count[i1] += 4
			t2count[i1] ^= 1
			t2hash[i1] ^= hash
			t2count[i2] += 4
			t2count[i2] ^= 2
			t2hash[i2] ^= hash
			// A count field wrapping past its 6 usable bits means a
			// slot is pathologically overloaded; peeling below will
			// simply fail to clear the stack and trigger a retry.
			if t2count[i0] < 4 || t2count[i1] < 4 || t2count[i2] < 4 {
				break
			}
		}

		qsize := 0
		for i := uint32(0); i < capacity; i++ {
			alone[qsize] = i
			if (t2count[i] >> 2) == 1 {
				qsize++
			}
		}

		stacksize := uint32(0)
		for qsize > 0 {
			qsize--
			index := alone[qsize]
			if (t2count[index] >> 2) != 1 {
				continue
			}
			hash := t2hash[index]
			found := t2count[index] & 3
			reverseH[stacksize] = found
			reverseOrder[stacksize] = hash
			stacksize++

			i0, i1, i2 := f.indices(hash)
			h012[1] = i1
			h012[2] = i2
			h012[3] = i0
			h012[4] = h012[1]

			other1 := h012[found+1]
			alone[qsize] = other1
			if (t2count[other1] >> 2) == 2 {
				qsize++
			}
			t2count[other1] -= 4
			t2count[other1] ^= mod3(found + 1)
			t2hash[other1] ^= hash

			other2 := h012[found+2]
			alone[qsize] = other2
			if (t2count[other2] >> 2) == 2 {
				qsize++
			}
			t2count[other2] -= 4
			t2count[other2] ^= mod3(found + 2)
			t2hash[other2] ^= hash
		}

		if stacksize == size {
			ok = true
			break
		}

		for i := uint32(0); i < size; i++ {
			reverseOrder[i] = 0
		}
		for i := uint32(0); i < capacity; i++ {
			t2count[i] = 0
			t2hash[i] = 0
		}
		f.Seed = splitmix64(&seedState)
	}
	if !ok {
		return nil, newBuildError("BinaryFuse8", ErrKindRetriesExceeded, ErrRetriesExceeded, "after %d attempts", cfg.maxIterations)
	}

	if cfg.uniformRandomFill {
		copy(f.Fingerprints, cfg.fillRandom(len(f.Fingerprints), f.Seed))
	}

	for i := int(size) - 1; i >= 0; i-- {
		hash := reverseOrder[i]
		fp := uint8(fingerprint(hash))
		i0, i1, i2 := f.indices(hash)
		found := reverseH[i]
		h012[0] = i0
		h012[1] = i1
		h012[2] = i2
		h012[3] = h012[0]
		h012[4] = h012[1]
		f.Fingerprints[h012[found]] = fp ^ f.Fingerprints[h012[found+1]] ^ f.Fingerprints[h012[found+2]]
	}

	return f, nil
}

// Contains reports whether key is probably a member of the filter's key
// set, with false positive probability ≈ 1/256.
func (f *BinaryFuse8) Contains(key uint64) bool {
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
func (f *BinaryFuse8) Len() int { return int(f.size) }

const binaryFuse8Magic = "XOF1B8\x00\x00"

// MarshalBinary encodes the filter's plain data layout, little-endian.
func (f *BinaryFuse8) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8+8+4+4+4+4+4+len(f.Fingerprints))
	copy(out[0:8], binaryFuse8Magic)
	binary.LittleEndian.PutUint64(out[8:16], f.Seed)
	binary.LittleEndian.PutUint32(out[16:20], f.SegmentLength)
	binary.LittleEndian.PutUint32(out[20:24], f.SegmentCount)
	binary.LittleEndian.PutUint32(out[24:28], f.SegmentCountLength)
	binary.LittleEndian.PutUint32(out[28:32], f.size)
	binary.LittleEndian.PutUint32(out[32:36], uint32(len(f.Fingerprints)))
	copy(out[36:], f.Fingerprints)
	return out, nil
}

// UnmarshalBinary decodes a filter previously produced by MarshalBinary.
func (f *BinaryFuse8) UnmarshalBinary(data []byte) error {
	if len(data) < 36 || string(data[0:8]) != binaryFuse8Magic {
		return fmt.Errorf("xorfilter: BinaryFuse8.UnmarshalBinary: bad header")
	}
	f.Seed = binary.LittleEndian.Uint64(data[8:16])
	f.SegmentLength = binary.LittleEndian.Uint32(data[16:20])
	if f.SegmentLength > 0 {
		f.SegmentLengthMask = f.SegmentLength - 1
	}
	f.SegmentCount = binary.LittleEndian.Uint32(data[20:24])
	f.SegmentCountLength = binary.LittleEndian.Uint32(data[24:28])
	f.size = binary.LittleEndian.Uint32(data[28:32])
	n := binary.LittleEndian.Uint32(data[32:36])
	if len(data) != 36+int(n) {
		return fmt.Errorf("xorfilter: BinaryFuse8.UnmarshalBinary: length mismatch")
	}
	f.Fingerprints = make([]uint8, n)
	copy(f.Fingerprints, data[36:])
	return nil
}
