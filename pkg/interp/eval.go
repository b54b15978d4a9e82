package interp

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

func (ip *Interp) enterDepth() error {
	ip.depth++
	if ip.depth > ip.MaxDepth {
		return vimperr.ErrStackDepth
	}
	return nil
}

func (ip *Interp) exitDepth() { ip.depth-- }

// EvalAexp evaluates an arithmetic expression node against the given
// variable and function frames.
func (ip *Interp) EvalAexp(idx ast.NodeIdx, vframe, fframe env.FrameIdx) (env.Value, error) {
	if err := ip.enterDepth(); err != nil {
		return env.Value{}, err
	}
	defer ip.exitDepth()

	a := ip.Prog.Aexp(idx)
	switch a.Kind {
	case ast.AexpIntConst:
		return env.Int32Value(a.IntVal), nil
	case ast.AexpFloConst:
		return env.Float32Value(a.FloVal), nil

	case ast.AexpAdd, ast.AexpSub, ast.AexpMul, ast.AexpDiv, ast.AexpMod:
		l, err := ip.EvalAexp(a.L, vframe, fframe)
		if err != nil {
			return env.Value{}, err
		}
		r, err := ip.EvalAexp(a.R, vframe, fframe)
		if err != nil {
			return env.Value{}, err
		}
		return arith(a.Kind, l, r)

	case ast.AexpVar:
		return ip.Vars.Read(vframe, a.VarName)

	case ast.AexpFnCall:
		res, err := ip.Call(a.Call, vframe, fframe)
		if err != nil {
			return env.Value{}, err
		}
		if !res.HasValue {
			return env.Value{}, fmt.Errorf("%w: %s", vimperr.ErrVoidUsedAsValue, a.Call.Name)
		}
		return res.Value, nil

	default:
		return env.Value{}, fmt.Errorf("%w: aexp kind %d", vimperr.ErrTypeMismatch, a.Kind)
	}
}

// EvalBexp evaluates a boolean expression node. Both operands of And/Or are
// always evaluated (no short-circuit), matching original_source's
// interpreter/bexp.rs.
func (ip *Interp) EvalBexp(idx ast.NodeIdx, vframe, fframe env.FrameIdx) (bool, error) {
	if err := ip.enterDepth(); err != nil {
		return false, err
	}
	defer ip.exitDepth()

	b := ip.Prog.Bexp(idx)
	switch b.Kind {
	case ast.BexpBoolConst:
		return b.BoolVal, nil

	case ast.BexpBeq, ast.BexpBneq, ast.BexpAnd, ast.BexpOr:
		l, err := ip.EvalBexp(b.L, vframe, fframe)
		if err != nil {
			return false, err
		}
		r, err := ip.EvalBexp(b.R, vframe, fframe)
		if err != nil {
			return false, err
		}
		switch b.Kind {
		case ast.BexpBeq:
			return l == r, nil
		case ast.BexpBneq:
			return l != r, nil
		case ast.BexpAnd:
			return l && r, nil
		default:
			return l || r, nil
		}

	case ast.BexpNot:
		v, err := ip.EvalBexp(b.L, vframe, fframe)
		if err != nil {
			return false, err
		}
		return !v, nil

	case ast.BexpAeq, ast.BexpAneq, ast.BexpLt, ast.BexpLte, ast.BexpGt, ast.BexpGte:
		l, err := ip.EvalAexp(b.L, vframe, fframe)
		if err != nil {
			return false, err
		}
		r, err := ip.EvalAexp(b.R, vframe, fframe)
		if err != nil {
			return false, err
		}
		cmp := compare(l, r)
		switch b.Kind {
		case ast.BexpAeq:
			return cmp == 0, nil
		case ast.BexpAneq:
			return cmp != 0, nil
		case ast.BexpLt:
			return cmp < 0, nil
		case ast.BexpLte:
			return cmp <= 0, nil
		case ast.BexpGt:
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}

	case ast.BexpVar:
		v, err := ip.Vars.Read(vframe, b.VarName)
		if err != nil {
			return false, err
		}
		if v.Type() != ast.Bool {
			return false, fmt.Errorf("%w: %s is %s, not bool", vimperr.ErrTypeMismatch, b.VarName, v.Type())
		}
		return v.B, nil

	case ast.BexpFnCall:
		res, err := ip.Call(b.Call, vframe, fframe)
		if err != nil {
			return false, err
		}
		if !res.HasValue {
			return false, fmt.Errorf("%w: %s", vimperr.ErrVoidUsedAsValue, b.Call.Name)
		}
		if res.Value.Type() != ast.Bool {
			return false, fmt.Errorf("%w: %s did not return bool", vimperr.ErrTypeMismatch, b.Call.Name)
		}
		return res.Value.B, nil

	default:
		return false, fmt.Errorf("%w: bexp kind %d", vimperr.ErrTypeMismatch, b.Kind)
	}
}

// EvalExp evaluates a generic expression reference, wrapping a Bexp result
// as a Bool Value.
func (ip *Interp) EvalExp(ref ast.ExpRef, vframe, fframe env.FrameIdx) (env.Value, error) {
	switch ref.Kind {
	case ast.ExpA:
		return ip.EvalAexp(ref.Idx, vframe, fframe)
	case ast.ExpB:
		v, err := ip.EvalBexp(ref.Idx, vframe, fframe)
		if err != nil {
			return env.Value{}, err
		}
		return env.BoolValue(v), nil
	default:
		return env.Value{}, fmt.Errorf("%w: exp kind %d", vimperr.ErrTypeMismatch, ref.Kind)
	}
}
