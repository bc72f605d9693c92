package xorfilter_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-probfilters/xorfilter"
)

// Fuse filters need n in the tens-of-thousands range for peeling to
// reliably succeed at the default retry budget; this does not mean small
// n is untested here — see TestFuse8SmallKeyCount below, which exercises
// fuseSizing's own segment-count arithmetic directly (the Xor family's
// tests never touch fuseSizing at all).
const fuseTestKeyCount = 100000

func TestFuse8NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(11, fuseTestKeyCount)
	f, err := xorfilter.PopulateFuse8(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestFuse16NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(12, fuseTestKeyCount)
	f, err := xorfilter.PopulateFuse16(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestFuse32NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(13, fuseTestKeyCount)
	f, err := xorfilter.PopulateFuse32(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestFuse8Deterministic(t *testing.T) {
	keys := distinctKeys(14, fuseTestKeyCount)
	f1, err1 := xorfilter.PopulateFuse8(keys, xorfilter.WithSeed(0xFEEDFACE))
	f2, err2 := xorfilter.PopulateFuse8(keys, xorfilter.WithSeed(0xFEEDFACE))
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, f1.Fingerprints, f2.Fingerprints)
}

func TestFuse8FalsePositiveRateBound(t *testing.T) {
	keys := distinctKeys(15, fuseTestKeyCount)
	f, err := xorfilter.PopulateFuse8(keys)
	require.Nil(t, err)

	present := make(map[uint64]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	r := rand.New(rand.NewSource(100))
	const trials = 200000
	falsePositives := 0
	for i := 0; i < trials; i++ {
		x := r.Uint64()
		if present[x] {
			continue
		}
		if f.Contains(x) {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / float64(trials)
	assert.Less(t, rate, 0.01)
}

func TestFuse8EmptyKeySet(t *testing.T) {
	f, err := xorfilter.PopulateFuse8(nil)
	require.Nil(t, err)
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Contains(1))
}

// TestFuse8SmallKeyCount guards the fuseSizing segCount clamp: capacities
// that round up to exactly one segment (or less) previously underflowed
// uint32 arithmetic into a huge SegmentCount, producing out-of-range table
// indices. n in {1..29} and {50..58} are exactly the ranges that
// reproduced the underflow, so every value in that union is covered.
func TestFuse8SmallKeyCount(t *testing.T) {
	for n := 1; n <= 60; n++ {
		keys := distinctKeys(int64(1000+n), n)
		f, err := xorfilter.PopulateFuse8(keys)
		require.Nil(t, err, "n=%d", n)
		for _, k := range keys {
			assert.True(t, f.Contains(k), "n=%d key=%d", n, k)
		}
	}
}

func TestFuse16SmallKeyCount(t *testing.T) {
	keys := distinctKeys(2010, 10)
	f, err := xorfilter.PopulateFuse16(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestFuse32SmallKeyCount(t *testing.T) {
	keys := distinctKeys(2011, 10)
	f, err := xorfilter.PopulateFuse32(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestFuse8DuplicateKeysExhaustRetries(t *testing.T) {
	keys := make([]uint64, 50)
	for i := range keys {
		keys[i] = 123
	}
	_, err := xorfilter.PopulateFuse8(keys, xorfilter.WithMaxIterations(5))
	require.NotNil(t, err)
	assert.Equal(t, xorfilter.ErrKindRetriesExceeded, err.Kind)
	assert.ErrorIs(t, err, xorfilter.ErrRetriesExceeded)
}
