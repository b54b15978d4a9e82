// Package env implements the scoped environment described in spec.md §4.4:
// two parallel arenas of frames, one for variables and one for functions,
// addressed by index rather than by reference-counted pointer (the Go
// analogue of original_source/rs-sources/src/ast/states.rs's
// FuncStatesStack/VarStatesStack parent-chain structures). The Go call
// stack stands in for the source's explicit recursion; frame indices are
// threaded through it the way the source threads Rc<...> handles.
package env

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// ValueKind discriminates the closed value lattice.
type ValueKind uint8

const (
	VInt32 ValueKind = iota
	VFloat32
	VBool
)

// Value is the tagged union of runtime values: Int32, Float32 or Bool.
type Value struct {
	Kind ValueKind
	I    int32
	F    float32
	B    bool
}

// Int32Value constructs an Int32 value.
func Int32Value(v int32) Value { return Value{Kind: VInt32, I: v} }

// Float32Value constructs a Float32 value.
func Float32Value(v float32) Value { return Value{Kind: VFloat32, F: v} }

// BoolValue constructs a Bool value.
func BoolValue(v bool) Value { return Value{Kind: VBool, B: v} }

// Type returns the DataType of v.
func (v Value) Type() ast.DataType {
	switch v.Kind {
	case VInt32:
		return ast.Int32
	case VFloat32:
		return ast.Float32
	case VBool:
		return ast.Bool
	default:
		return ast.Void
	}
}

func (v Value) String() string {
	switch v.Kind {
	case VInt32:
		return fmt.Sprintf("%d", v.I)
	case VFloat32:
		return fmt.Sprintf("%g", v.F)
	case VBool:
		return fmt.Sprintf("%t", v.B)
	default:
		return "<void>"
	}
}

// Widen converts v to target, applying the single-direction Int32->Float32
// promotion. Every other mismatch is a TypeMismatch. Centralized here so
// assignment, parameter binding and return all share one rule, per spec.md
// §9's "Int->Float widening" design note.
func Widen(v Value, target ast.DataType) (Value, error) {
	if v.Type() == target {
		return v, nil
	}
	if v.Type() == ast.Int32 && target == ast.Float32 {
		return Float32Value(float32(v.I)), nil
	}
	return Value{}, fmt.Errorf("%w: cannot assign %s to %s", vimperr.ErrTypeMismatch, v.Type(), target)
}
