package ast

// Builder helpers. spec.md places program-building combinators out of scope
// (programs are emitted directly as bytecode by tooling), but tests still
// need a way to construct trees in-process rather than hand-writing bytes,
// the way the source's constructor_helper submodules do for its own tests.

// NewIntConst pushes an Aexp.IntConst node.
func (p *Program) NewIntConst(v int32) NodeIdx {
	return p.pushAexp(Aexp{Kind: AexpIntConst, IntVal: v})
}

// NewFloConst pushes an Aexp.FloConst node.
func (p *Program) NewFloConst(v float32) NodeIdx {
	return p.pushAexp(Aexp{Kind: AexpFloConst, FloVal: v})
}

// NewAexpBinOp pushes an Add/Sub/Mul/Div/Mod node.
func (p *Program) NewAexpBinOp(kind AexpKind, l, r NodeIdx) NodeIdx {
	return p.pushAexp(Aexp{Kind: kind, L: l, R: r})
}

// NewAexpVar pushes an Aexp.Var node.
func (p *Program) NewAexpVar(name string) NodeIdx {
	return p.pushAexp(Aexp{Kind: AexpVar, VarName: name})
}

// NewAexpCall pushes an Aexp.FnCall node.
func (p *Program) NewAexpCall(fc FnCall) NodeIdx {
	return p.pushAexp(Aexp{Kind: AexpFnCall, Call: fc})
}

// NewBoolConst pushes a Bexp.BoolConst node.
func (p *Program) NewBoolConst(v bool) NodeIdx {
	return p.pushBexp(Bexp{Kind: BexpBoolConst, BoolVal: v})
}

// NewBexpBinOp pushes a Beq/Bneq/And/Or node.
func (p *Program) NewBexpBinOp(kind BexpKind, l, r NodeIdx) NodeIdx {
	return p.pushBexp(Bexp{Kind: kind, L: l, R: r})
}

// NewBexpNot pushes a Bexp.Not node.
func (p *Program) NewBexpNot(e NodeIdx) NodeIdx {
	return p.pushBexp(Bexp{Kind: BexpNot, L: e})
}

// NewAexpCompare pushes an Aeq/Aneq/Lt/Lte/Gt/Gte node over two Aexp
// operands.
func (p *Program) NewAexpCompare(kind BexpKind, l, r NodeIdx) NodeIdx {
	return p.pushBexp(Bexp{Kind: kind, L: l, R: r})
}

// NewBexpVar pushes a Bexp.Var node.
func (p *Program) NewBexpVar(name string) NodeIdx {
	return p.pushBexp(Bexp{Kind: BexpVar, VarName: name})
}

// NewBexpCall pushes a Bexp.FnCall node.
func (p *Program) NewBexpCall(fc FnCall) NodeIdx {
	return p.pushBexp(Bexp{Kind: BexpFnCall, Call: fc})
}

// ExpFromAexp wraps an Aexp index as a generic Exp reference.
func ExpFromAexp(idx NodeIdx) ExpRef { return ExpRef{Kind: ExpA, Idx: idx} }

// ExpFromBexp wraps a Bexp index as a generic Exp reference.
func ExpFromBexp(idx NodeIdx) ExpRef { return ExpRef{Kind: ExpB, Idx: idx} }

// NewSkip pushes a Cmd.Skip node.
func (p *Program) NewSkip() NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdSkip})
}

// NewVarDeclCmd pushes a Cmd.VarDecl node.
func (p *Program) NewVarDeclCmd(d VarDecl) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdVarDecl, Decl: d})
}

// NewAssignCmd pushes a Cmd.Assign node.
func (p *Program) NewAssignCmd(v VarRef, e ExpRef) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdAssign, AssignTo: v, AssignExp: e})
}

// NewIfElseCmd pushes a Cmd.IfElse node.
func (p *Program) NewIfElseCmd(cond NodeIdx, tr, fa NodeIdx) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdIfElse, Cond: cond, A: tr, B: fa})
}

// NewWhileLoopCmd pushes a Cmd.WhileLoop node.
func (p *Program) NewWhileLoopCmd(cond NodeIdx, body NodeIdx) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdWhileLoop, Cond: cond, A: body})
}

// NewSeqCmd pushes a Cmd.Seq node.
func (p *Program) NewSeqCmd(fst, snd NodeIdx) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdSeq, A: fst, B: snd})
}

// NewFnDeclCmd pushes a Cmd.FnDecl node.
func (p *Program) NewFnDeclCmd(proto FnProtoType, body NodeIdx) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdFnDecl, Proto: proto, A: body})
}

// NewReturnCmd pushes a Cmd.Return node with no expression (void return).
func (p *Program) NewReturnCmd() NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdReturn, HasReturn: false})
}

// NewReturnValueCmd pushes a Cmd.Return node carrying an expression.
func (p *Program) NewReturnValueCmd(e ExpRef) NodeIdx {
	return p.pushCmd(Cmd{Kind: CmdReturn, HasReturn: true, RetExp: e})
}

// Seq chains cmds left-to-right into a right-leaning Seq spine, mirroring
// how a program's globals-then-functions shape is built.
func (p *Program) Seq(cmds ...NodeIdx) NodeIdx {
	if len(cmds) == 0 {
		return p.NewSkip()
	}
	acc := cmds[len(cmds)-1]
	for i := len(cmds) - 2; i >= 0; i-- {
		acc = p.NewSeqCmd(cmds[i], acc)
	}
	return acc
}
