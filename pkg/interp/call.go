package interp

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// CallResult models the Rust source's Option<Value>: HasValue false means
// the callee returned void.
type CallResult struct {
	HasValue bool
	Value    env.Value
}

// Call evaluates fc's arguments in the caller's frames, resolves the
// overload by actual argument types, and executes the callee's body in
// fresh child frames rooted at the callee's *definition-site* frames
// (env.FuncEntry.DefVarFrame/DefFuncFrame), not the caller's — spec.md
// §4.4/§4.5, grounded on original_source's func_call_by_vals.
func (ip *Interp) Call(fc ast.FnCall, vframe, fframe env.FrameIdx) (CallResult, error) {
	argVals := make([]env.Value, len(fc.Args))
	argTypes := make([]ast.DataType, len(fc.Args))
	for i, a := range fc.Args {
		v, err := ip.EvalExp(a, vframe, fframe)
		if err != nil {
			return CallResult{}, err
		}
		argVals[i] = v
		argTypes[i] = v.Type()
	}

	entry, err := ip.Funcs.Lookup(fframe, fc.Name, argTypes)
	if err != nil {
		return CallResult{}, err
	}
	return ip.invoke(entry, fc.Name, argVals)
}

// invoke binds argVals to entry's parameters in fresh definition-site
// frames and runs its body, shared by Call (ordinary calls) and CallEntry
// (the synthesized call into "entry" after root execution).
func (ip *Interp) invoke(entry env.FuncEntry, name string, argVals []env.Value) (CallResult, error) {
	if err := ip.enterDepth(); err != nil {
		return CallResult{}, err
	}
	defer ip.exitDepth()

	calleeVFrame := ip.Vars.PushFrame(entry.DefVarFrame)
	calleeFFrame := ip.Funcs.PushFrame(entry.DefFuncFrame)

	for i, param := range entry.Proto.Params {
		if err := ip.Vars.Declare(calleeVFrame, param); err != nil {
			return CallResult{}, err
		}
		widened, err := env.Widen(argVals[i], param.Type)
		if err != nil {
			return CallResult{}, err
		}
		if err := ip.Vars.Assign(calleeVFrame, param.Name, widened); err != nil {
			return CallResult{}, err
		}
	}

	res, err := ip.ExecCmd(entry.Body, calleeVFrame, calleeFFrame)
	if err != nil {
		return CallResult{}, err
	}

	switch {
	case !res.Returned:
		// Body ran off the end without a return statement: treated as a
		// void return, matching original_source's fall-through behaviour.
		return CallResult{}, nil
	case !res.HasValue:
		return CallResult{}, nil
	default:
		widened, err := env.Widen(res.Value, entry.Proto.RetType)
		if err != nil {
			return CallResult{}, fmt.Errorf("%w: return value for %s", vimperr.ErrTypeMismatch, name)
		}
		return CallResult{HasValue: true, Value: widened}, nil
	}
}
