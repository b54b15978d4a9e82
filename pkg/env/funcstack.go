package env

import (
	"fmt"
	"strings"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// FuncEntry is a declared function: its prototype, its body (an index into
// the owning ast.Program's Cmd arena), and the variable frame that was
// active when the FnDecl executed. Calls build the callee's initial frame
// as a child of DefVarFrame rather than of the caller's frame, so a
// function always sees the variables visible at its definition site (spec.md
// §4.4/§4.5), matching original_source's func_call_by_vals which opens a
// new level off the function's *declaring* states, not the caller's.
type FuncEntry struct {
	Proto       ast.FnProtoType
	Body        ast.NodeIdx
	DefVarFrame FrameIdx
	// DefFuncFrame is the function frame active when this FnDecl executed.
	// A call builds the callee's function frame as a child of this frame
	// (not of the caller's), the same def-site-over-call-site rule applied
	// symmetrically to both parallel stacks.
	DefFuncFrame FrameIdx
}

func funcKey(name string, params []ast.DataType) string {
	var b strings.Builder
	b.WriteString(name)
	for _, t := range params {
		b.WriteByte('/')
		b.WriteString(t.String())
	}
	return b.String()
}

type funcFrame struct {
	parent FrameIdx
	funcs  map[string]FuncEntry
	// names records every overload name ever declared in this frame, so a
	// failed key lookup can tell UnknownFunction (name never seen) apart
	// from NoOverloadMatch (name seen, but not with these argument types).
	names map[string]bool
}

// FuncStack is the arena of function-scope frames, parallel to VarStack.
type FuncStack struct {
	frames []funcFrame
}

// NewFuncStack returns a stack containing a single root frame and its
// index.
func NewFuncStack() (*FuncStack, FrameIdx) {
	s := &FuncStack{frames: []funcFrame{{parent: NoFrame, funcs: map[string]FuncEntry{}, names: map[string]bool{}}}}
	return s, 0
}

// PushFrame allocates a new, empty frame whose parent is parent.
func (s *FuncStack) PushFrame(parent FrameIdx) FrameIdx {
	s.frames = append(s.frames, funcFrame{parent: parent, funcs: map[string]FuncEntry{}, names: map[string]bool{}})
	return FrameIdx(len(s.frames) - 1)
}

// Declare adds an overload to frame's local scope. It fails with
// ErrDuplicateFunction if (name, param types) is already bound there.
func (s *FuncStack) Declare(frame FrameIdx, proto ast.FnProtoType, body ast.NodeIdx, defVarFrame FrameIdx) error {
	f := &s.frames[frame]
	key := funcKey(proto.Name, proto.ParamTypes())
	if _, ok := f.funcs[key]; ok {
		return fmt.Errorf("%w: %s", vimperr.ErrDuplicateFunction, proto.Name)
	}
	f.funcs[key] = FuncEntry{Proto: proto, Body: body, DefVarFrame: defVarFrame, DefFuncFrame: frame}
	f.names[proto.Name] = true
	return nil
}

// Lookup resolves an overload by (name, actual argument types), walking the
// parent chain from frame. Functions declared in an outer scope are visible
// from inner scopes (spec.md §4.4).
func (s *FuncStack) Lookup(frame FrameIdx, name string, argTypes []ast.DataType) (FuncEntry, error) {
	key := funcKey(name, argTypes)
	seenName := false
	for cur := frame; cur != NoFrame; cur = s.frames[cur].parent {
		if e, ok := s.frames[cur].funcs[key]; ok {
			return e, nil
		}
		if s.frames[cur].names[name] {
			seenName = true
		}
	}
	if seenName {
		return FuncEntry{}, fmt.Errorf("%w: %s", vimperr.ErrNoOverloadMatch, name)
	}
	return FuncEntry{}, fmt.Errorf("%w: %s", vimperr.ErrUnknownFunction, name)
}
