package interp

import (
	"fmt"
	"math"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

func toFloat32(v env.Value) float32 {
	if v.Type() == ast.Int32 {
		return float32(v.I)
	}
	return v.F
}

// arith applies an Add/Sub/Mul/Div/Mod op to l and r, following the
// type-checker's widening rule: any Float32 operand promotes the result.
// Int32 division and modulo by zero are trapped explicitly rather than left
// to panic, resolving spec.md §9's open question on overflow/div-by-zero
// (see DESIGN.md); Int32 overflow itself wraps, matching Go's native
// twos-complement arithmetic.
func arith(kind ast.AexpKind, l, r env.Value) (env.Value, error) {
	if l.Type() == ast.Int32 && r.Type() == ast.Int32 {
		li, ri := l.I, r.I
		switch kind {
		case ast.AexpAdd:
			return env.Int32Value(li + ri), nil
		case ast.AexpSub:
			return env.Int32Value(li - ri), nil
		case ast.AexpMul:
			return env.Int32Value(li * ri), nil
		case ast.AexpDiv:
			if ri == 0 {
				return env.Value{}, fmt.Errorf("%w: integer division by zero", vimperr.ErrArithmeticTrap)
			}
			return env.Int32Value(li / ri), nil
		case ast.AexpMod:
			if ri == 0 {
				return env.Value{}, fmt.Errorf("%w: integer modulo by zero", vimperr.ErrArithmeticTrap)
			}
			return env.Int32Value(li % ri), nil
		}
	}

	lf, rf := toFloat32(l), toFloat32(r)
	switch kind {
	case ast.AexpAdd:
		return env.Float32Value(lf + rf), nil
	case ast.AexpSub:
		return env.Float32Value(lf - rf), nil
	case ast.AexpMul:
		return env.Float32Value(lf * rf), nil
	case ast.AexpDiv:
		return env.Float32Value(lf / rf), nil
	case ast.AexpMod:
		return env.Float32Value(float32(math.Mod(float64(lf), float64(rf)))), nil
	default:
		return env.Value{}, fmt.Errorf("%w: unknown arithmetic op %d", vimperr.ErrTypeMismatch, kind)
	}
}

// compare returns -1/0/1 comparing l and r, widening to float32 if either
// operand is Float32.
func compare(l, r env.Value) int {
	if l.Type() == ast.Int32 && r.Type() == ast.Int32 {
		switch {
		case l.I < r.I:
			return -1
		case l.I > r.I:
			return 1
		default:
			return 0
		}
	}
	lf, rf := toFloat32(l), toFloat32(r)
	switch {
	case lf < rf:
		return -1
	case lf > rf:
		return 1
	default:
		return 0
	}
}
