package xorfilter_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-probfilters/xorfilter"
)

func TestBinaryFuse8NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(21, 50000)
	f, err := xorfilter.PopulateBinaryFuse8(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestBinaryFuse16NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(22, 50000)
	f, err := xorfilter.PopulateBinaryFuse16(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestBinaryFuse32NoFalseNegatives(t *testing.T) {
	keys := distinctKeys(23, 50000)
	f, err := xorfilter.PopulateBinaryFuse32(keys)
	require.Nil(t, err)
	for _, k := range keys {
		assert.True(t, f.Contains(k))
	}
}

func TestBinaryFuse8Deterministic(t *testing.T) {
	keys := distinctKeys(24, 50000)
	f1, err1 := xorfilter.PopulateBinaryFuse8(keys, xorfilter.WithSeed(0xABAD1DEA))
	f2, err2 := xorfilter.PopulateBinaryFuse8(keys, xorfilter.WithSeed(0xABAD1DEA))
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, f1.Fingerprints, f2.Fingerprints)
	assert.Equal(t, f1.Seed, f2.Seed)
}

func TestBinaryFuse8FalsePositiveRateBound(t *testing.T) {
	keys := distinctKeys(25, 50000)
	f, err := xorfilter.PopulateBinaryFuse8(keys)
	require.Nil(t, err)

	present := make(map[uint64]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	r := rand.New(rand.NewSource(101))
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

func TestBinaryFuse8EmptyKeySet(t *testing.T) {
	f, err := xorfilter.PopulateBinaryFuse8(nil)
	require.Nil(t, err)
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Contains(1))
}

func TestBinaryFuse8DuplicateKeysExhaustRetries(t *testing.T) {
	keys := make([]uint64, 200)
	for i := range keys {
		keys[i] = 99
	}
	_, err := xorfilter.PopulateBinaryFuse8(keys, xorfilter.WithMaxIterations(3))
	require.NotNil(t, err)
	assert.Equal(t, xorfilter.ErrKindRetriesExceeded, err.Kind)
}
