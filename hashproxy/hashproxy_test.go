package hashproxy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-probfilters/xorfilter"
	"github.com/go-probfilters/xorfilter/hashproxy"
)

func buildXor8(hashed []uint64) (xorfilter.Filter, *xorfilter.BuildError) {
	return xorfilter.PopulateXor8(hashed)
}

func TestProxyStringNoFalseNegatives(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	p, err := hashproxy.Build(words, hashproxy.XXHashString, "xxhash", buildXor8)
	require.Nil(t, err)

	for _, w := range words {
		assert.True(t, p.Contains(w))
	}
	assert.False(t, p.Contains("not-in-the-set-zzz"))
}

func TestProxyBytesNoFalseNegatives(t *testing.T) {
	entries := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	p, err := hashproxy.Build(entries, hashproxy.XXHashBytes, "xxhash", buildXor8)
	require.Nil(t, err)

	for _, e := range entries {
		assert.True(t, p.Contains(e))
	}
}

func TestProxyCollisionComposesSameAnswer(t *testing.T) {
	// Two distinct strings deliberately forced to the same uint64 via a
	// constant hash function exercise the composition property: Contains
	// must agree for any two keys that hash identically.
	constHash := func(string) uint64 { return 0xDEADBEEF }
	p, err := hashproxy.Build([]string{"only-member"}, constHash, "const", buildXor8)
	require.Nil(t, err)

	assert.Equal(t, p.Contains("only-member"), p.Contains("a-different-string-same-hash"))
}

func TestProxyHashIDIsRecordedVerbatim(t *testing.T) {
	p, err := hashproxy.Build([]string{"a", "b"}, hashproxy.XXHashString, "my-hash-v1", buildXor8)
	require.Nil(t, err)
	assert.Equal(t, "my-hash-v1", p.HashID)
}

func TestProxyLenMatchesKeyCount(t *testing.T) {
	words := []string{"a", "b", "c", "d"}
	p, err := hashproxy.Build(words, hashproxy.XXHashString, "xxhash", buildXor8)
	require.Nil(t, err)
	assert.Equal(t, len(words), p.Len())
}

func TestProxyPropagatesBuildError(t *testing.T) {
	keys := make([]string, 50)
	for i := range keys {
		keys[i] = "same-key"
	}
	_, err := hashproxy.Build(keys, hashproxy.XXHashString, "xxhash", func(hashed []uint64) (xorfilter.Filter, *xorfilter.BuildError) {
		return xorfilter.PopulateXor8(hashed, xorfilter.WithMaxIterations(3))
	})
	require.NotNil(t, err)
	assert.Equal(t, xorfilter.ErrKindRetriesExceeded, err.Kind)
}
