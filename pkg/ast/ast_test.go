package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/vimp/pkg/ast"
)

// buildIsPrime builds:
//
//	fn is_divisible(n: i32, d: i32) -> bool { return n % d == 0; }
//	fn entry(n: i32) -> bool {
//	  let d = 2;
//	  while (d < n) {
//	    if (is_divisible(n, d)) { return false; }
//	    d = d + 1;
//	  }
//	  return n > 1;
//	}
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

	dVar := p.NewAexpVar("d")
	nVar := p.NewAexpVar("n")
	whileCond := p.NewAexpCompare(ast.BexpLt, dVar, nVar)

	callArgs := []ast.ExpRef{ast.ExpFromAexp(p.NewAexpVar("n")), ast.ExpFromAexp(p.NewAexpVar("d"))}
	ifCond := p.NewBexpCall(ast.FnCall{Name: "is_divisible", Args: callArgs})
	retFalse := p.NewReturnValueCmd(ast.ExpFromBexp(p.NewBoolConst(false)))
	ifCmd := p.NewIfElseCmd(ifCond, retFalse, p.NewSkip())

	dPlus1 := p.NewAexpBinOp(ast.AexpAdd, p.NewAexpVar("d"), p.NewIntConst(1))
	incD := p.NewAssignCmd(ast.VarRef{Name: "d"}, ast.ExpFromAexp(dPlus1))

	body := p.Seq(ifCmd, incD)
	whileCmd := p.NewWhileLoopCmd(whileCond, body)

	one := p.NewIntConst(1)
	gtOne := p.NewAexpCompare(ast.BexpGt, p.NewAexpVar("n"), one)
	retGt := p.NewReturnValueCmd(ast.ExpFromBexp(gtOne))

	entryBody := p.Seq(declD, assignD, whileCmd, retGt)
	entry := p.NewFnDeclCmd(ast.FnProtoType{
		RetType: ast.Bool,
		Name:    "entry",
		Params:  []ast.VarDecl{{Type: ast.Int32, Name: "n"}},
	}, entryBody)

	p.Root = p.Seq(isDivisible, entry)
}

func TestProgramRoundTrip(t *testing.T) {
	p := ast.NewProgram()
	buildIsPrime(p)

	encoded := p.Bytes()

	decoded, rest, err := ast.ParseProgram(encoded)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, encoded, decoded.Bytes())
}

func TestReturnVoidRoundTrip(t *testing.T) {
	p := ast.NewProgram()
	idx := p.NewReturnCmd()
	encoded := p.EncodeCmd(nil, idx)

	p2 := ast.NewProgram()
	decodedIdx, rest, err := p2.DecodeCmd(encoded)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.False(t, p2.Cmd(decodedIdx).HasReturn)
}

func TestReturnValueRoundTrip(t *testing.T) {
	p := ast.NewProgram()
	idx := p.NewReturnValueCmd(ast.ExpFromAexp(p.NewIntConst(42)))
	encoded := p.EncodeCmd(nil, idx)

	p2 := ast.NewProgram()
	decodedIdx, rest, err := p2.DecodeCmd(encoded)
	require.NoError(t, err)
	require.Empty(t, rest)
	c := p2.Cmd(decodedIdx)
	require.True(t, c.HasReturn)
	require.Equal(t, ast.ExpA, c.RetExp.Kind)
	require.Equal(t, int32(42), p2.Aexp(c.RetExp.Idx).IntVal)
}

func TestDecodeBadTag(t *testing.T) {
	p := ast.NewProgram()
	_, _, err := p.DecodeCmd([]byte{0xff})
	require.Error(t, err)
}

func TestDataTypeWidening(t *testing.T) {
	require.True(t, ast.Int32.CanWidenTo(ast.Float32))
	require.False(t, ast.Float32.CanWidenTo(ast.Int32))
	require.True(t, ast.Bool.CanWidenTo(ast.Bool))
	require.False(t, ast.Bool.CanWidenTo(ast.Int32))
}
