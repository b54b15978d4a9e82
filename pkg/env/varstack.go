package env

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// FrameIdx addresses a frame inside a stack's arena.
type FrameIdx int32

// NoFrame is the sentinel "no parent" index, used only by the root frame.
const NoFrame FrameIdx = -1

type varSlot struct {
	typ         ast.DataType
	value       Value
	initialised bool
}

type varFrame struct {
	parent FrameIdx
	vars   map[string]*varSlot
}

// VarStack is the arena of variable-scope frames. Frames form a tree:
// pushing allocates a new frame whose parent is whatever frame the caller
// names, and lookups walk parent links without ever mutating them.
type VarStack struct {
	frames []varFrame
}

// NewVarStack returns a stack containing a single root frame (NoFrame
// parent) and returns its index.
func NewVarStack() (*VarStack, FrameIdx) {
	s := &VarStack{frames: []varFrame{{parent: NoFrame, vars: map[string]*varSlot{}}}}
	return s, 0
}

// PushFrame allocates a new, empty frame whose parent is parent.
func (s *VarStack) PushFrame(parent FrameIdx) FrameIdx {
	s.frames = append(s.frames, varFrame{parent: parent, vars: map[string]*varSlot{}})
	return FrameIdx(len(s.frames) - 1)
}

// Declare adds d to frame's local scope. It fails with ErrDuplicateVariable
// if the name is already bound in that exact frame (shadowing an ancestor's
// binding is fine).
func (s *VarStack) Declare(frame FrameIdx, d ast.VarDecl) error {
	f := &s.frames[frame]
	if _, ok := f.vars[d.Name]; ok {
		return fmt.Errorf("%w: %s", vimperr.ErrDuplicateVariable, d.Name)
	}
	f.vars[d.Name] = &varSlot{typ: d.Type}
	return nil
}

func (s *VarStack) find(frame FrameIdx, name string) *varSlot {
	for cur := frame; cur != NoFrame; cur = s.frames[cur].parent {
		if slot, ok := s.frames[cur].vars[name]; ok {
			return slot
		}
	}
	return nil
}

// Assign walks the parent chain from frame and assigns v to the nearest
// frame declaring name, applying Int32->Float32 widening. It fails with
// ErrUnknownVariable if no frame declares name.
func (s *VarStack) Assign(frame FrameIdx, name string, v Value) error {
	slot := s.find(frame, name)
	if slot == nil {
		return fmt.Errorf("%w: %s", vimperr.ErrUnknownVariable, name)
	}
	widened, err := Widen(v, slot.typ)
	if err != nil {
		return err
	}
	slot.value = widened
	slot.initialised = true
	return nil
}

// Read walks the parent chain from frame and returns the value bound to
// name. It fails with ErrUnknownVariable if undeclared, or
// ErrUninitialisedVariable if declared but never assigned.
func (s *VarStack) Read(frame FrameIdx, name string) (Value, error) {
	slot := s.find(frame, name)
	if slot == nil {
		return Value{}, fmt.Errorf("%w: %s", vimperr.ErrUnknownVariable, name)
	}
	if !slot.initialised {
		return Value{}, fmt.Errorf("%w: %s", vimperr.ErrUninitialisedVariable, name)
	}
	return slot.value, nil
}

// Type reports the declared type of name, walking the parent chain.
func (s *VarStack) Type(frame FrameIdx, name string) (ast.DataType, bool) {
	slot := s.find(frame, name)
	if slot == nil {
		return ast.Void, false
	}
	return slot.typ, true
}
