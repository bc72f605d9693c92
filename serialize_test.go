package xorfilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-probfilters/xorfilter"
)

func probeKeys(keys []uint64, extra int, seed int64) []uint64 {
	out := append([]uint64{}, keys...)
	out = append(out, distinctKeys(seed, extra)...)
	return out
}

func TestXor8RoundTrip(t *testing.T) {
	keys := distinctKeys(31, 5000)
	f, err := xorfilter.PopulateXor8(keys)
	require.Nil(t, err)

	data, merr := f.MarshalBinary()
	require.NoError(t, merr)

	var f2 xorfilter.Xor8
	require.NoError(t, f2.UnmarshalBinary(data))

	for _, k := range probeKeys(keys, 1000, 32) {
		assert.Equal(t, f.Contains(k), f2.Contains(k))
	}
}

func TestFuse16RoundTrip(t *testing.T) {
	keys := distinctKeys(33, fuseTestKeyCount)
	f, err := xorfilter.PopulateFuse16(keys)
	require.Nil(t, err)

	data, merr := f.MarshalBinary()
	require.NoError(t, merr)

	var f2 xorfilter.Fuse16
	require.NoError(t, f2.UnmarshalBinary(data))

	for _, k := range probeKeys(keys, 1000, 34) {
		assert.Equal(t, f.Contains(k), f2.Contains(k))
	}
}

func TestBinaryFuse32RoundTrip(t *testing.T) {
	keys := distinctKeys(35, 20000)
	f, err := xorfilter.PopulateBinaryFuse32(keys)
	require.Nil(t, err)

	data, merr := f.MarshalBinary()
	require.NoError(t, merr)

	var f2 xorfilter.BinaryFuse32
	require.NoError(t, f2.UnmarshalBinary(data))

	for _, k := range probeKeys(keys, 1000, 36) {
		assert.Equal(t, f.Contains(k), f2.Contains(k))
	}
}

func TestBinaryFuse8RoundTripEmptyFilter(t *testing.T) {
	f, err := xorfilter.PopulateBinaryFuse8(nil)
	require.Nil(t, err)

	data, merr := f.MarshalBinary()
	require.NoError(t, merr)

	var f2 xorfilter.BinaryFuse8
	require.NoError(t, f2.UnmarshalBinary(data))
	assert.Equal(t, 0, f2.Len())
	assert.False(t, f2.Contains(123))
}

func TestUnmarshalBinaryRejectsBadMagic(t *testing.T) {
	var f xorfilter.Xor8
	err := f.UnmarshalBinary([]byte("not a valid xorfilter payload"))
	assert.Error(t, err)
}
