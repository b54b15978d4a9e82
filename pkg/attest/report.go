package attest

import (
	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/primcodec"
)

// Report is the signed outcome of one Run call: the session's public key
// and its signature over H_report, plus the three hashes that chain
// together the request (H_args, H_code, H_out) and the value the program
// actually returned.
type Report struct {
	SessionPub [64]byte
	Signature  [64]byte

	HArgs [32]byte
	HCode [32]byte
	HOut  [32]byte

	HasValue bool
	Value    env.Value
}

// encodeResult serializes a call's return value for hashing and for the
// caller-visible output, per spec.md §6: [0x00] for a void return, or
// [0x01, <tagged value bytes>] otherwise. The tagged value encoding reuses
// primcodec's existing per-type tag, so a single leading byte distinguishes
// "no value" from "value present" and the primcodec tag that follows
// distinguishes Int32/Float32/Bool.
func encodeResult(hasValue bool, v env.Value) []byte {
	if !hasValue {
		return []byte{0x00}
	}
	out := []byte{0x01}
	switch v.Type() {
	case ast.Int32:
		return primcodec.EncodeI32(out, v.I)
	case ast.Float32:
		return primcodec.EncodeF32(out, v.F)
	case ast.Bool:
		return primcodec.EncodeBool(out, v.B)
	default:
		return out
	}
}
