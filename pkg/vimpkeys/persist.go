package vimpkeys

import (
	"crypto/ecdsa"
	"fmt"
	"os"

	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// Bytes returns priv's scalar D as a 32-byte little-endian block, the
// on-disk encoding for the verifier's persistent identity (spec.md §4.3
// distinguishes this long-lived key from the executor's per-request
// session keys, which are never written to disk).
func (priv *PrivateKey) Bytes() []byte {
	return le32(priv.D)
}

// PrivateKeyFromBytes reconstructs a PrivateKey from the 32-byte encoding
// produced by Bytes.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: private key must be 32 bytes, got %d", vimperr.ErrCryptoFailure, len(b))
	}
	d := fromLE32(b)
	curve := Curve()
	x, y := curve.ScalarBaseMult(d.Bytes())
	return &PrivateKey{PrivateKey: ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         d,
	}}, nil
}

// LoadOrCreate reads the verifier's persistent key from path, generating and
// writing a fresh one (mode 0o600) if the file does not exist. This is the
// verifier identity a type-checker CLI invocation signs certificates with,
// carried across runs rather than regenerated per call.
func LoadOrCreate(path string) (*PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return PrivateKeyFromBytes(b)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading verifier key: %w", err)
	}

	priv, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, priv.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("writing verifier key: %w", err)
	}
	return priv, nil
}
