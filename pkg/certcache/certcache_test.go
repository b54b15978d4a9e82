package certcache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/vimp/pkg/certcache"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := certcache.New(2)
	require.NoError(t, err)

	var h [32]byte
	h[0] = 1
	c.Put(h, certcache.Entry{VerifierPub: []byte("pub"), Sig: []byte("sig")})

	got, ok := c.Get(h)
	require.True(t, ok)
	require.Equal(t, []byte("sig"), got.Sig)
}

func TestGetMissReturnsFalse(t *testing.T) {
	c, err := certcache.New(2)
	require.NoError(t, err)

	var h [32]byte
	_, ok := c.Get(h)
	require.False(t, ok)
}

func TestEvictsOverCapacity(t *testing.T) {
	c, err := certcache.New(1)
	require.NoError(t, err)

	var h1, h2 [32]byte
	h1[0] = 1
	h2[0] = 2
	c.Put(h1, certcache.Entry{Sig: []byte("one")})
	c.Put(h2, certcache.Entry{Sig: []byte("two")})

	require.Equal(t, 1, c.Len())
	_, ok := c.Get(h1)
	require.False(t, ok)
	_, ok = c.Get(h2)
	require.True(t, ok)
}
