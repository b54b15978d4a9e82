package vimpkeys_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/vimp/pkg/vimpkeys"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	priv, err := vimpkeys.GenerateKey()
	require.NoError(t, err)

	h := sha256.Sum256([]byte("sample"))
	sig, err := priv.SignHash(h[:])
	require.NoError(t, err)
	require.Len(t, sig, 64)

	pub := priv.PublicKey()
	require.True(t, pub.Verify(sig, h[:]))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv, err := vimpkeys.GenerateKey()
	require.NoError(t, err)
	other, err := vimpkeys.GenerateKey()
	require.NoError(t, err)

	h := sha256.Sum256([]byte("sample"))
	sig, err := priv.SignHash(h[:])
	require.NoError(t, err)

	require.False(t, other.PublicKey().Verify(sig, h[:]))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	priv, err := vimpkeys.GenerateKey()
	require.NoError(t, err)
	h := sha256.Sum256([]byte("sample"))
	require.False(t, priv.PublicKey().Verify([]byte{1, 2, 3}, h[:]))
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	priv, err := vimpkeys.GenerateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	decoded, err := vimpkeys.PublicKeyFromBytes(pub.Bytes())
	require.NoError(t, err)
	require.Equal(t, pub.X, decoded.X)
	require.Equal(t, pub.Y, decoded.Y)
}

func TestPublicKeyFromBytesRejectsWrongLength(t *testing.T) {
	_, err := vimpkeys.PublicKeyFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}
