// Package vimpkeys wraps crypto/ecdsa over the P-256 curve for the
// verifier's persistent signing key and the executor's per-request session
// keys, grounded on the teacher's pkg/crypto/keys (PrivateKey/PublicKey
// over ecdsa, raw r||s signatures) rather than any hand-rolled primitive.
package vimpkeys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// Curve is the curve used throughout: P-256, matching spec.md's "EC256" key
// material.
func Curve() elliptic.Curve { return elliptic.P256() }

// PrivateKey is an ECDSA private key over Curve.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// GenerateKey generates a fresh PrivateKey using crypto/rand.
func GenerateKey() (*PrivateKey, error) {
	k, err := ecdsa.GenerateKey(Curve(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vimperr.ErrCryptoFailure, err)
	}
	return &PrivateKey{PrivateKey: *k}, nil
}

// PublicKey returns the public half of priv.
func (priv *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{PublicKey: priv.PrivateKey.PublicKey}
}

// SignHash signs a pre-computed digest (typically SHA-256) and returns the
// raw r||s encoding (32 bytes each, little-endian, zero-padded), matching
// spec.md §6's wire layout for the .vimpc trailer.
func (priv *PrivateKey) SignHash(hash []byte) ([]byte, error) {
	r, s, err := ecdsa.Sign(rand.Reader, &priv.PrivateKey, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", vimperr.ErrCryptoFailure, err)
	}
	return append(le32(r), le32(s)...), nil
}

// PublicKey is an ECDSA public key over Curve.
type PublicKey struct {
	ecdsa.PublicKey
}

// Bytes returns the X and Y coordinates as two zero-padded 32-byte
// little-endian blocks, the plain (uncompressed, no 0x04 prefix) encoding
// spec.md §6 specifies for the .vimpc trailer.
func (pub *PublicKey) Bytes() []byte {
	if pub.X == nil || pub.Y == nil {
		return make([]byte, 64)
	}
	return append(le32(pub.X), le32(pub.Y)...)
}

// PublicKeyFromBytes reconstructs a PublicKey from the 64-byte encoding
// produced by Bytes.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != 64 {
		return nil, fmt.Errorf("%w: public key must be 64 bytes, got %d", vimperr.ErrCryptoFailure, len(b))
	}
	x := fromLE32(b[:32])
	y := fromLE32(b[32:])
	if !Curve().IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: public key point not on curve", vimperr.ErrCryptoFailure)
	}
	return &PublicKey{PublicKey: ecdsa.PublicKey{Curve: Curve(), X: x, Y: y}}, nil
}

// Verify checks a raw r||s signature over hash. It never panics on
// malformed input, returning false instead.
func (pub *PublicKey) Verify(sig, hash []byte) bool {
	if pub.X == nil || pub.Y == nil || len(sig) != 64 {
		return false
	}
	r := fromLE32(sig[:32])
	s := fromLE32(sig[32:])
	return ecdsa.Verify(&pub.PublicKey, hash, r, s)
}

// le32 encodes v as a 32-byte little-endian block, zero-padded at the high
// end, per spec.md §6's "all little-endian" trailer encoding.
func le32(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	out := make([]byte, 32)
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// fromLE32 decodes a 32-byte little-endian block back into a big.Int.
func fromLE32(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}
