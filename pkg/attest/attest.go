// Package attest implements the remote-attestation glue that wraps the
// type-checker and interpreter: certifying a parsed, type-checked program
// with a verifier signature over its exact byte prefix, then later running
// that verified program against an argument buffer and signing a report
// over the whole request's hash chain, per spec.md §4.6. Grounded on
// original_source/enclave-bin/{type_checker,interpreter}/enclave/src/lib.rs,
// translated from SGX enclave calls into plain Go functions: there is no
// secure-enclave boundary left to cross, but the hash-then-sign shape of
// every step is unchanged.
package attest

import (
	"crypto/sha256"
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// vimpcTrailerLen is the byte length of the certificate appended after a
// program's AST bytes in a .vimpc file: verifier_pk.x(32) ∥ verifier_pk.y(32)
// ∥ sig.r(32) ∥ sig.s(32), per spec.md §6.
const vimpcTrailerLen = 64 + 64

func hash256(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// splitVimpc parses b as AST bytes followed by the fixed-length verifier
// trailer, returning the program, the exact AST byte prefix consumed, and
// the trailer's public-key and signature halves.
func splitVimpc(b []byte) (prog *ast.Program, codeBytes, pubBytes, sigBytes []byte, err error) {
	prog, rest, err := ast.ParseProgram(b)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	codeLen := len(b) - len(rest)
	codeBytes = b[:codeLen]

	if len(rest) != vimpcTrailerLen {
		return nil, nil, nil, nil, fmt.Errorf("%w: verifier trailer must be %d bytes, got %d", vimperr.ErrShortInput, vimpcTrailerLen, len(rest))
	}
	pubBytes = rest[:64]
	sigBytes = rest[64:]
	return prog, codeBytes, pubBytes, sigBytes, nil
}
