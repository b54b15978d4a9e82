package interp

import (
	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// checkNoRootReturn walks idx looking for a Cmd::Return reachable without
// passing through a function call, i.e. everywhere except inside a
// FnDecl's own body. A bare top-level "return;" type-checks trivially
// against Void, so this structural check is the only thing standing
// between it and silently terminating root execution (spec.md §4.5/§8).
func checkNoRootReturn(p *ast.Program, idx ast.NodeIdx) error {
	if idx == ast.NoIdx {
		return nil
	}
	c := p.Cmd(idx)
	switch c.Kind {
	case ast.CmdReturn:
		return vimperr.ErrReturnAtProgramRoot
	case ast.CmdSeq:
		if err := checkNoRootReturn(p, c.A); err != nil {
			return err
		}
		return checkNoRootReturn(p, c.B)
	case ast.CmdIfElse:
		if err := checkNoRootReturn(p, c.A); err != nil {
			return err
		}
		return checkNoRootReturn(p, c.B)
	case ast.CmdWhileLoop:
		return checkNoRootReturn(p, c.A)
	case ast.CmdFnDecl:
		// A return inside a declared function is only reachable via a
		// call, so it does not count against the root.
		return nil
	default:
		return nil
	}
}

// RunRoot executes the program's root command once, populating global
// variables and registering top-level functions, per spec.md §4.5's "root
// execution" phase. It must be called exactly once before CallEntry.
func (ip *Interp) RunRoot() error {
	if err := checkNoRootReturn(ip.Prog, ip.Prog.Root); err != nil {
		return err
	}
	_, err := ip.ExecCmd(ip.Prog.Root, ip.VRoot, ip.FRoot)
	return err
}

// CallEntry invokes the "entry" overload registered by RunRoot whose
// parameter types match the types of the given actual argument values.
func (ip *Interp) CallEntry(args []env.Value) (CallResult, error) {
	argTypes := make([]ast.DataType, len(args))
	for i, a := range args {
		argTypes[i] = a.Type()
	}

	entry, err := ip.Funcs.Lookup(ip.FRoot, "entry", argTypes)
	if err != nil {
		return CallResult{}, err
	}
	return ip.invoke(entry, "entry", args)
}
