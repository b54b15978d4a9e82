// Package interp is the tree-walking evaluator of spec.md §4.5: expression
// evaluation with int->float widening, command execution with Option<Option>
// return propagation modeled as ExecResult, and function calls resolved by
// actual argument types against the definition-site environment. Grounded
// on original_source/rs-sources/src/interpreter/{aexp,bexp,cmd,exp}.rs.
package interp

import (
	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
)

// Interp holds one request's evaluation state: the parsed program, its two
// parallel environment stacks, and a depth counter bounding recursion
// (spec.md §5's "stack-bounded recursive walk", resolving the open question
// in §9 with vimpconfig.Limits.MaxDepth).
type Interp struct {
	Prog  *ast.Program
	Vars  *env.VarStack
	Funcs *env.FuncStack

	VRoot env.FrameIdx
	FRoot env.FrameIdx

	MaxDepth int
	depth    int
}

// New returns an Interp ready to run prog, with fresh root frames.
func New(prog *ast.Program, maxDepth int) *Interp {
	vs, vroot := env.NewVarStack()
	fs, froot := env.NewFuncStack()
	return &Interp{
		Prog:     prog,
		Vars:     vs,
		Funcs:    fs,
		VRoot:    vroot,
		FRoot:    froot,
		MaxDepth: maxDepth,
	}
}
