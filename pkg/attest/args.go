package attest

import (
	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/interp"
	"github.com/nspcc-dev/vimp/pkg/primcodec"
)

// argEvalMaxDepth bounds recursion while evaluating a single argument
// expression. Argument expressions carry no function declarations of their
// own, so this only guards against a pathologically deep arithmetic tree.
const argEvalMaxDepth = 64

// decodeArgs parses a .param buffer (u64 len + len×Exp, spec.md §6),
// evaluating each expression against an isolated interpreter whose root
// frames hold no variables or functions: an
// argument expression is closed (it may not reference the callee's
// variables or functions), so a param buffer that tries to do so fails with
// the ordinary ErrUnknownVariable/ErrUnknownFunction rather than silently
// resolving against unrelated state.
//
// Returns the evaluated argument values and the exact prefix of buf the
// decode consumed, for hashing as H_args.
func decodeArgs(buf []byte) ([]env.Value, []byte, error) {
	n, rest, err := primcodec.DecodeU64(buf)
	if err != nil {
		return nil, nil, err
	}

	argsProg := ast.NewProgram()
	refs := make([]ast.ExpRef, 0, n)
	for i := uint64(0); i < n; i++ {
		var ref ast.ExpRef
		ref, rest, err = argsProg.DecodeExp(rest)
		if err != nil {
			return nil, nil, err
		}
		refs = append(refs, ref)
	}
	consumed := buf[:len(buf)-len(rest)]

	argIp := interp.New(argsProg, argEvalMaxDepth)
	vals := make([]env.Value, len(refs))
	for i, ref := range refs {
		v, err := argIp.EvalExp(ref, argIp.VRoot, argIp.FRoot)
		if err != nil {
			return nil, nil, err
		}
		vals[i] = v
	}
	return vals, consumed, nil
}
