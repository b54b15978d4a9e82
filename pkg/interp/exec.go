package interp

import (
	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
)

// ExecResult models the source's Option<Option<Value>>: Returned is false
// while control still falls through; once a return statement executes,
// Returned becomes true and HasValue/Value carry its optional payload.
type ExecResult struct {
	Returned bool
	HasValue bool
	Value    env.Value
}

// ExecCmd executes the command at idx in the given frames, propagating any
// return up through Seq/IfElse/WhileLoop without executing further
// statements once one fires.
func (ip *Interp) ExecCmd(idx ast.NodeIdx, vframe, fframe env.FrameIdx) (ExecResult, error) {
	if err := ip.enterDepth(); err != nil {
		return ExecResult{}, err
	}
	defer ip.exitDepth()

	c := ip.Prog.Cmd(idx)
	switch c.Kind {
	case ast.CmdSkip:
		return ExecResult{}, nil

	case ast.CmdVarDecl:
		if err := ip.Vars.Declare(vframe, c.Decl); err != nil {
			return ExecResult{}, err
		}
		return ExecResult{}, nil

	case ast.CmdAssign:
		v, err := ip.EvalExp(c.AssignExp, vframe, fframe)
		if err != nil {
			return ExecResult{}, err
		}
		if err := ip.Vars.Assign(vframe, c.AssignTo.Name, v); err != nil {
			return ExecResult{}, err
		}
		return ExecResult{}, nil

	case ast.CmdIfElse:
		cond, err := ip.EvalBexp(c.Cond, vframe, fframe)
		if err != nil {
			return ExecResult{}, err
		}
		branch := c.A
		if !cond {
			branch = c.B
		}
		childV := ip.Vars.PushFrame(vframe)
		childF := ip.Funcs.PushFrame(fframe)
		return ip.ExecCmd(branch, childV, childF)

	case ast.CmdWhileLoop:
		for {
			cond, err := ip.EvalBexp(c.Cond, vframe, fframe)
			if err != nil {
				return ExecResult{}, err
			}
			if !cond {
				return ExecResult{}, nil
			}
			childV := ip.Vars.PushFrame(vframe)
			childF := ip.Funcs.PushFrame(fframe)
			res, err := ip.ExecCmd(c.A, childV, childF)
			if err != nil {
				return ExecResult{}, err
			}
			if res.Returned {
				return res, nil
			}
		}

	case ast.CmdSeq:
		res, err := ip.ExecCmd(c.A, vframe, fframe)
		if err != nil {
			return ExecResult{}, err
		}
		if res.Returned {
			return res, nil
		}
		return ip.ExecCmd(c.B, vframe, fframe)

	case ast.CmdFnDecl:
		if err := ip.Funcs.Declare(fframe, c.Proto, c.A, vframe); err != nil {
			return ExecResult{}, err
		}
		return ExecResult{}, nil

	case ast.CmdReturn:
		if !c.HasReturn {
			return ExecResult{Returned: true, HasValue: false}, nil
		}
		v, err := ip.EvalExp(c.RetExp, vframe, fframe)
		if err != nil {
			return ExecResult{}, err
		}
		return ExecResult{Returned: true, HasValue: true, Value: v}, nil

	default:
		return ExecResult{}, nil
	}
}
