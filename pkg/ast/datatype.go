// Package ast holds the IMP-with-functions abstract syntax tree: the closed
// data-type lattice, expression and command trees, and the recursive binary
// codec over them. Nodes live in per-kind arenas owned by a Program and are
// addressed by index rather than by pointer or reference count, the way
// spec.md §9 Design Notes recommends replacing the source's Rc/RefCell
// sharing — arenas are freed as a unit when a Program goes out of scope.
package ast

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// DataType is the closed set of value types a program can manipulate.
type DataType uint8

const (
	Void DataType = iota
	Int32
	Float32
	Bool
)

func (d DataType) String() string {
	switch d {
	case Void:
		return "void"
	case Int32:
		return "i32"
	case Float32:
		return "f32"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(d))
	}
}

// DataTypeFromByte decodes a DataType tag byte.
func DataTypeFromByte(b byte) (DataType, error) {
	switch DataType(b) {
	case Void, Int32, Float32, Bool:
		return DataType(b), nil
	default:
		return 0, fmt.Errorf("%w: data type byte 0x%02x", vimperr.ErrBadTag, b)
	}
}

// CanWidenTo reports whether a value of type d may be implicitly promoted to
// target, i.e. the single-direction Int32 -> Float32 widening rule.
func (d DataType) CanWidenTo(target DataType) bool {
	if d == target {
		return true
	}
	return d == Int32 && target == Float32
}

// IsNumeric reports whether d is one of Int32 or Float32.
func (d DataType) IsNumeric() bool {
	return d == Int32 || d == Float32
}
