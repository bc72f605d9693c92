package xorfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitmix64Deterministic(t *testing.T) {
	var s1, s2 uint64 = 42, 42
	for i := 0; i < 100; i++ {
		require.Equal(t, splitmix64(&s1), splitmix64(&s2))
	}
}

func TestSplitmix64AdvancesState(t *testing.T) {
	var state uint64 = 1
	a := splitmix64(&state)
	b := splitmix64(&state)
	assert.NotEqual(t, a, b, "successive draws from the same stream must differ")
}

func TestMixsplitDeterministic(t *testing.T) {
	assert.Equal(t, mixsplit(7, 11), mixsplit(7, 11))
	assert.NotEqual(t, mixsplit(7, 11), mixsplit(7, 12), "different seeds should (almost always) mix differently")
}

func TestReduce32Bounds(t *testing.T) {
	for _, n := range []uint32{1, 2, 3, 100, 1 << 20} {
		for _, x := range []uint32{0, 1, 0xFFFFFFFF, 12345678} {
			got := reduce32(x, n)
			assert.Less(t, got, n)
		}
	}
}

func TestReduce32ZeroStaysZero(t *testing.T) {
	assert.Equal(t, uint32(0), reduce32(0, 1000))
}

func TestRotl64Identity(t *testing.T) {
	var x uint64 = 0x0123456789ABCDEF
	assert.Equal(t, x, rotl64(x, 0))
	assert.Equal(t, x, rotl64(rotl64(x, 17), 64-17))
}

func TestXorIndicesDistinctThirds(t *testing.T) {
	blockLength := uint32(1000)
	h0, h1, h2 := xorIndices(0x9E3779B97F4A7C15, blockLength)
	assert.Less(t, h0, blockLength)
	assert.GreaterOrEqual(t, h1, blockLength)
	assert.Less(t, h1, 2*blockLength)
	assert.GreaterOrEqual(t, h2, 2*blockLength)
	assert.Less(t, h2, 3*blockLength)
}

func TestFuseIndicesStayWithinSegments(t *testing.T) {
	segmentLength := uint32(64)
	segmentLengthMask := segmentLength - 1
	segmentCount := uint32(10)
	for _, hash := range []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0x1234567890ABCDEF} {
		h0, h1, h2 := fuseIndices(hash, segmentLength, segmentLengthMask, segmentCount)
		assert.Less(t, h1-h0, 2*segmentLength)
		assert.Less(t, h2-h0, 3*segmentLength)
	}
}
