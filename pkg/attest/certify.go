package attest

import (
	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/typecheck"
	"github.com/nspcc-dev/vimp/pkg/vimpkeys"
	"github.com/nspcc-dev/vimp/pkg/vimpmetrics"
)

// Certificate is the result of Certify: the verified .vimpc bytes ready to
// be written out, plus the exact number of input bytes the AST parse
// consumed (only that prefix of the .impc input is carried into the .vimpc
// as the program; any bytes after it are dropped).
type Certificate struct {
	Bytes     []byte
	BytesRead uint64
}

// Certify parses a program prefix out of bytecode, type-checks it, and
// signs the SHA-256 hash of the exact consumed prefix (H_code) with
// verifierKey, returning the fully-assembled .vimpc file: AST bytes ∥
// verifier_pk.x(32) ∥ verifier_pk.y(32) ∥ sig.r(32) ∥ sig.s(32).
//
// Grounded on original_source's type_check_byte_code: generate keypair (the
// verifier's key is supplied by the caller here rather than generated
// per-call, since SPEC_FULL.md's CLI holds one persistent verifier
// identity across runs), parse AST tracking bytes consumed, hash the
// consumed prefix, run the two-phase type check, sign the hash.
func Certify(bytecode []byte, verifierKey *vimpkeys.PrivateKey) (cert Certificate, err error) {
	start := observeStart()
	defer func() {
		outcome := vimpmetrics.OutcomeSuccess
		if err != nil {
			outcome = vimpmetrics.OutcomeError
		}
		vimpmetrics.ObserveRequest(vimpmetrics.StageCertify, outcome, sinceSeconds(start))
	}()

	prog, rest, err := ast.ParseProgram(bytecode)
	if err != nil {
		return Certificate{}, err
	}
	bytesRead := uint64(len(bytecode) - len(rest))
	codeBytes := bytecode[:bytesRead]

	if err := typecheck.Check(prog); err != nil {
		return Certificate{}, err
	}

	hCode := hash256(codeBytes)
	sig, err := verifierKey.SignHash(hCode[:])
	if err != nil {
		return Certificate{}, err
	}

	out := make([]byte, 0, len(codeBytes)+vimpcTrailerLen)
	out = append(out, codeBytes...)
	out = append(out, verifierKey.PublicKey().Bytes()...)
	out = append(out, sig...)

	return Certificate{Bytes: out, BytesRead: bytesRead}, nil
}
