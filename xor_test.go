package xorfilter_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-probfilters/xorfilter"
)

func TestXor8NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(1, 10000)
	f, err := xorfilter.PopulateXor8(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k), "key %d must be reported present", k)
	}
}

func TestXor16NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(2, 10000)
	f, err := xorfilter.PopulateXor16(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestXor32NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(3, 10000)
	f, err := xorfilter.PopulateXor32(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestXor8Deterministic(t *testing.T) {
	keys := distinctKeys(4, 5000)
	f1, err1 := xorfilter.PopulateXor8(keys, xorfilter.WithSeed(0xC0FFEE))
	f2, err2 := xorfilter.PopulateXor8(keys, xorfilter.WithSeed(0xC0FFEE))
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, f1.Fingerprints, f2.Fingerprints)
	assert.Equal(t, f1.Seed, f2.Seed)
}

func TestXor8FalsePositiveRateBound(t *testing.T) {
	keys := distinctKeys(5, 50000)
	f, err := xorfilter.PopulateXor8(keys)
	require.Nil(t, err)

	present := make(map[uint64]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	r := rand.New(rand.NewSource(99))
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
	// Expected ~1/256 ≈ 0.0039; allow generous slack for a fixed small sample.
	assert.Less(t, rate, 0.01, "observed false-positive rate %f exceeds bound", rate)
}

func TestXor8EmptyKeySet(t *testing.T) {
	f, err := xorfilter.PopulateXor8(nil)
	require.Nil(t, err)
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Contains(42))
}

func TestXor8DuplicateKeysExhaustRetries(t *testing.T) {
	keys := make([]uint64, 50)
	for i := range keys {
		keys[i] = 7 // all identical
	}
	_, err := xorfilter.PopulateXor8(keys, xorfilter.WithMaxIterations(5))
	require.NotNil(t, err)
	assert.Equal(t, xorfilter.ErrKindRetriesExceeded, err.Kind)
	assert.ErrorIs(t, err, xorfilter.ErrRetriesExceeded)
}

func TestXor8UniformRandomFillStillHoldsInvariant(t *testing.T) {
	keys := distinctKeys(6, 2000)
	f, err := xorfilter.PopulateXor8(keys, xorfilter.WithUniformRandomFill())
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}
