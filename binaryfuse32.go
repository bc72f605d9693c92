package xorfilter

import (
	"encoding/binary"
	"fmt"
)

// BinaryFuse32 is a 32-bit-fingerprint Binary Fuse filter: ε ≈ 1/2^32.
type BinaryFuse32 struct {
	Seed               uint64
	SegmentLength      uint32
	SegmentLengthMask  uint32
	SegmentCount       uint32
	SegmentCountLength uint32

	Fingerprints []uint32

	size uint32
}

func (f *BinaryFuse32) indices(hash uint64) (uint32, uint32, uint32) {
	return binaryFuseIndices(hash, f.SegmentLength, f.SegmentLengthMask, f.SegmentCountLength)
}

// PopulateBinaryFuse32 builds a BinaryFuse32 filter from keys. See
// PopulateBinaryFuse8 for the peeling strategy and duplicate-key caveat.
func PopulateBinaryFuse32(keys []uint64, opts ...Option) (*BinaryFuse32, *BuildError) {
	cfg := resolveOptions(opts...)
	size := uint32(len(keys))

	segmentLength, segmentLengthMask, segmentCount, segmentCountLength, capacity, err := binaryFuseSizing(size)
	if err != nil {
		return nil, newBuildError("BinaryFuse32", ErrKindSizeOverflow, err, "sizing %d keys", size)
	}

	f := &BinaryFuse32{
		SegmentLength:      segmentLength,
		SegmentLengthMask:  segmentLengthMask,
		SegmentCount:       segmentCount,
		SegmentCountLength: segmentCountLength,
		Fingerprints:       make([]uint32, capacity),
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
		return nil, newBuildError("BinaryFuse32", ErrKindRetriesExceeded, ErrRetriesExceeded, "after %d attempts", cfg.maxIterations)
	}

	if cfg.uniformRandomFill {
		random := cfg.fillRandom(len(f.Fingerprints)*4, f.Seed)
		for i := range f.Fingerprints {
			f.Fingerprints[i] = binary.LittleEndian.Uint32(random[i*4 : i*4+4])
		}
	}

	for i := int(size) - 1; i >= 0; i-- {
		hash := reverseOrder[i]
		fp := uint32(fingerprint(hash))
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
// set, with false positive probability ≈ 1/2^32.
func (f *BinaryFuse32) Contains(key uint64) bool {
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
func (f *BinaryFuse32) Len() int { return int(f.size) }

const binaryFuse32Magic = "XOF1B32\x00"

// MarshalBinary encodes the filter's plain data layout, little-endian.
func (f *BinaryFuse32) MarshalBinary() ([]byte, error) {
	out := make([]byte, 8+8+4+4+4+4+4+len(f.Fingerprints)*4)
	copy(out[0:8], binaryFuse32Magic)
	binary.LittleEndian.PutUint64(out[8:16], f.Seed)
	binary.LittleEndian.PutUint32(out[16:20], f.SegmentLength)
	binary.LittleEndian.PutUint32(out[20:24], f.SegmentCount)
	binary.LittleEndian.PutUint32(out[24:28], f.SegmentCountLength)
	binary.LittleEndian.PutUint32(out[28:32], f.size)
	binary.LittleEndian.PutUint32(out[32:36], uint32(len(f.Fingerprints)))
	for i, v := range f.Fingerprints {
		binary.LittleEndian.PutUint32(out[36+i*4:40+i*4], v)
	}
	return out, nil
}

// UnmarshalBinary decodes a filter previously produced by MarshalBinary.
func (f *BinaryFuse32) UnmarshalBinary(data []byte) error {
	if len(data) < 36 || string(data[0:8]) != binaryFuse32Magic {
		return fmt.Errorf("xorfilter: BinaryFuse32.UnmarshalBinary: bad header")
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
	if len(data) != 36+int(n)*4 {
		return fmt.Errorf("xorfilter: BinaryFuse32.UnmarshalBinary: length mismatch")
	}
	f.Fingerprints = make([]uint32, n)
	for i := range f.Fingerprints {
		f.Fingerprints[i] = binary.LittleEndian.Uint32(data[36+i*4 : 40+i*4])
	}
	return nil
}
