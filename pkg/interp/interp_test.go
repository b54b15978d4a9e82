package interp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/env"
	"github.com/nspcc-dev/vimp/pkg/interp"
	"github.com/nspcc-dev/vimp/pkg/typecheck"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// buildIsPrime mirrors ast_test.go's program: is_divisible/entry computing
// primality by trial division.
func buildIsPrime(p *ast.Program) {
	nMod := p.NewAexpVar("n")
	dMod := p.NewAexpVar("d")
	modExp := p.NewAexpBinOp(ast.AexpMod, nMod, dMod)
	zero := p.NewIntConst(0)
	eqZero := p.NewAexpCompare(ast.BexpAeq, modExp, zero)
	retEq := p.NewReturnValueCmd(ast.ExpFromBexp(eqZero))

	isDivisible := p.NewFnDeclCmd(ast.FnProtoType{
		RetType: ast.Bool,
		Name:    "is_divisible",
		Params: []ast.VarDecl{
			{Type: ast.Int32, Name: "n"},
			{Type: ast.Int32, Name: "d"},
		},
	}, retEq)

	declD := p.NewVarDeclCmd(ast.VarDecl{Type: ast.Int32, Name: "d"})
	assignD := p.NewAssignCmd(ast.VarRef{Name: "d"}, ast.ExpFromAexp(p.NewIntConst(2)))

	whileCond := p.NewAexpCompare(ast.BexpLt, p.NewAexpVar("d"), p.NewAexpVar("n"))

	callArgs := []ast.ExpRef{ast.ExpFromAexp(p.NewAexpVar("n")), ast.ExpFromAexp(p.NewAexpVar("d"))}
	ifCond := p.NewBexpCall(ast.FnCall{Name: "is_divisible", Args: callArgs})
	retFalse := p.NewReturnValueCmd(ast.ExpFromBexp(p.NewBoolConst(false)))
	ifCmd := p.NewIfElseCmd(ifCond, retFalse, p.NewSkip())

	dPlus1 := p.NewAexpBinOp(ast.AexpAdd, p.NewAexpVar("d"), p.NewIntConst(1))
	incD := p.NewAssignCmd(ast.VarRef{Name: "d"}, ast.ExpFromAexp(dPlus1))

	body := p.Seq(ifCmd, incD)
	whileCmd := p.NewWhileLoopCmd(whileCond, body)

	gtOne := p.NewAexpCompare(ast.BexpGt, p.NewAexpVar("n"), p.NewIntConst(1))
	retGt := p.NewReturnValueCmd(ast.ExpFromBexp(gtOne))

	entryBody := p.Seq(declD, assignD, whileCmd, retGt)
	entry := p.NewFnDeclCmd(ast.FnProtoType{
		RetType: ast.Bool,
		Name:    "entry",
		Params:  []ast.VarDecl{{Type: ast.Int32, Name: "n"}},
	}, entryBody)

	p.Root = p.Seq(isDivisible, entry)
}

func runIsPrime(t *testing.T, n int32) (interp.CallResult, error) {
	p := ast.NewProgram()
	buildIsPrime(p)
	require.NoError(t, typecheck.Check(p))

	ip := interp.New(p, 1024)
	require.NoError(t, ip.RunRoot())
	return ip.CallEntry([]env.Value{env.Int32Value(n)})
}

func TestIsPrime211(t *testing.T) {
	res, err := runIsPrime(t, 211)
	require.NoError(t, err)
	require.True(t, res.HasValue)
	require.True(t, res.Value.B)
}

func TestIsPrime222(t *testing.T) {
	res, err := runIsPrime(t, 222)
	require.NoError(t, err)
	require.True(t, res.HasValue)
	require.False(t, res.Value.B)
}

func TestIsPrimeFloatArgNoOverload(t *testing.T) {
	p := ast.NewProgram()
	buildIsPrime(p)
	require.NoError(t, typecheck.Check(p))

	ip := interp.New(p, 1024)
	require.NoError(t, ip.RunRoot())
	_, err := ip.CallEntry([]env.Value{env.Float32Value(222.0)})
	require.ErrorIs(t, err, vimperr.ErrNoOverloadMatch)
}

// buildOverloadProgram declares three overloads of f and an entry that picks
// between them by argument types.
func buildOverloadProgram(p *ast.Program) {
	retInt := p.NewReturnValueCmd(ast.ExpFromAexp(p.NewIntConst(1)))
	f1 := p.NewFnDeclCmd(ast.FnProtoType{RetType: ast.Int32, Name: "f", Params: []ast.VarDecl{{Type: ast.Int32, Name: "a"}, {Type: ast.Int32, Name: "b"}}}, retInt)

	retBool := p.NewReturnValueCmd(ast.ExpFromBexp(p.NewBoolConst(true)))
	f2 := p.NewFnDeclCmd(ast.FnProtoType{RetType: ast.Bool, Name: "f", Params: []ast.VarDecl{{Type: ast.Int32, Name: "a"}, {Type: ast.Bool, Name: "b"}}}, retBool)

	retFloat := p.NewReturnValueCmd(ast.ExpFromAexp(p.NewFloConst(3.5)))
	f3 := p.NewFnDeclCmd(ast.FnProtoType{RetType: ast.Float32, Name: "f", Params: []ast.VarDecl{{Type: ast.Bool, Name: "a"}, {Type: ast.Int32, Name: "b"}}}, retFloat)

	retCall := p.NewReturnValueCmd(ast.ExpFromAexp(p.NewAexpCall(ast.FnCall{
		Name: "f",
		Args: []ast.ExpRef{ast.ExpFromAexp(p.NewIntConst(1)), ast.ExpFromAexp(p.NewIntConst(2))},
	})))
	entry := p.NewFnDeclCmd(ast.FnProtoType{RetType: ast.Int32, Name: "entry"}, retCall)

	p.Root = p.Seq(f1, f2, f3, entry)
}

func TestOverloadResolutionPicksIntVariant(t *testing.T) {
	p := ast.NewProgram()
	buildOverloadProgram(p)
	require.NoError(t, typecheck.Check(p))

	ip := interp.New(p, 1024)
	require.NoError(t, ip.RunRoot())
	res, err := ip.CallEntry(nil)
	require.NoError(t, err)
	require.True(t, res.HasValue)
	require.Equal(t, int32(1), res.Value.I)
}

// buildShadowProgram: outer b = 15, inner scope declares+assigns its own b =
// 10, after the if outer b must still read 15.
func buildShadowProgram(p *ast.Program) {
	declB := p.NewVarDeclCmd(ast.VarDecl{Type: ast.Int32, Name: "b"})
	assignB := p.NewAssignCmd(ast.VarRef{Name: "b"}, ast.ExpFromAexp(p.NewIntConst(15)))

	innerDecl := p.NewVarDeclCmd(ast.VarDecl{Type: ast.Int32, Name: "b"})
	innerAssign := p.NewAssignCmd(ast.VarRef{Name: "b"}, ast.ExpFromAexp(p.NewIntConst(10)))
	ifBody := p.Seq(innerDecl, innerAssign)
	ifCmd := p.NewIfElseCmd(p.NewBoolConst(true), ifBody, p.NewSkip())

	retB := p.NewReturnValueCmd(ast.ExpFromAexp(p.NewAexpVar("b")))
	entry := p.NewFnDeclCmd(ast.FnProtoType{RetType: ast.Int32, Name: "entry"}, p.Seq(declB, assignB, ifCmd, retB))

	p.Root = p.Seq(entry)
}

func TestScopeShadowingDoesNotLeakOut(t *testing.T) {
	p := ast.NewProgram()
	buildShadowProgram(p)
	require.NoError(t, typecheck.Check(p))

	ip := interp.New(p, 1024)
	require.NoError(t, ip.RunRoot())
	res, err := ip.CallEntry(nil)
	require.NoError(t, err)
	require.True(t, res.HasValue)
	require.Equal(t, int32(15), res.Value.I)
}

// buildGlobalsSwapProgram declares two globals and an entry(good: Bool) that
// conditionally swaps them, returning void.
func buildGlobalsSwapProgram(p *ast.Program) {
	declG1 := p.NewVarDeclCmd(ast.VarDecl{Type: ast.Int32, Name: "global_int1"})
	assignG1 := p.NewAssignCmd(ast.VarRef{Name: "global_int1"}, ast.ExpFromAexp(p.NewIntConst(1)))
	declG2 := p.NewVarDeclCmd(ast.VarDecl{Type: ast.Int32, Name: "global_int2"})
	assignG2 := p.NewAssignCmd(ast.VarRef{Name: "global_int2"}, ast.ExpFromAexp(p.NewIntConst(2)))

	declTmp := p.NewVarDeclCmd(ast.VarDecl{Type: ast.Int32, Name: "tmp"})
	assignTmp := p.NewAssignCmd(ast.VarRef{Name: "tmp"}, ast.ExpFromAexp(p.NewAexpVar("global_int1")))
	assignG1FromG2 := p.NewAssignCmd(ast.VarRef{Name: "global_int1"}, ast.ExpFromAexp(p.NewAexpVar("global_int2")))
	assignG2FromTmp := p.NewAssignCmd(ast.VarRef{Name: "global_int2"}, ast.ExpFromAexp(p.NewAexpVar("tmp")))
	swapBody := p.Seq(declTmp, assignTmp, assignG1FromG2, assignG2FromTmp)

	ifCmd := p.NewIfElseCmd(p.NewBexpVar("good"), swapBody, p.NewSkip())
	entryBody := p.Seq(ifCmd, p.NewReturnCmd())

	entry := p.NewFnDeclCmd(ast.FnProtoType{
		RetType: ast.Void,
		Name:    "entry",
		Params:  []ast.VarDecl{{Type: ast.Bool, Name: "good"}},
	}, entryBody)

	p.Root = p.Seq(declG1, assignG1, declG2, assignG2, entry)
}

func TestGlobalsSwapVoidReturn(t *testing.T) {
	p := ast.NewProgram()
	buildGlobalsSwapProgram(p)
	require.NoError(t, typecheck.Check(p))

	ip := interp.New(p, 1024)
	require.NoError(t, ip.RunRoot())
	res, err := ip.CallEntry([]env.Value{env.BoolValue(true)})
	require.NoError(t, err)
	require.False(t, res.HasValue)

	v1, err := ip.Vars.Read(ip.VRoot, "global_int1")
	require.NoError(t, err)
	require.Equal(t, int32(2), v1.I)
	v2, err := ip.Vars.Read(ip.VRoot, "global_int2")
	require.NoError(t, err)
	require.Equal(t, int32(1), v2.I)
}

func TestReturnAtProgramRootRejected(t *testing.T) {
	p := ast.NewProgram()
	p.Root = p.NewReturnCmd()

	ip := interp.New(p, 1024)
	err := ip.RunRoot()
	require.ErrorIs(t, err, vimperr.ErrReturnAtProgramRoot)
}

func TestIntDivByZeroTraps(t *testing.T) {
	p := ast.NewProgram()
	divExp := p.NewAexpBinOp(ast.AexpDiv, p.NewIntConst(10), p.NewIntConst(0))
	entry := p.NewFnDeclCmd(ast.FnProtoType{RetType: ast.Int32, Name: "entry"}, p.NewReturnValueCmd(ast.ExpFromAexp(divExp)))
	p.Root = p.Seq(entry)

	ip := interp.New(p, 1024)
	require.NoError(t, ip.RunRoot())
	_, err := ip.CallEntry(nil)
	require.ErrorIs(t, err, vimperr.ErrArithmeticTrap)
}
