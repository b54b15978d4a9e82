package attest_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/attest"
	"github.com/nspcc-dev/vimp/pkg/certcache"
	"github.com/nspcc-dev/vimp/pkg/primcodec"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
	"github.com/nspcc-dev/vimp/pkg/vimpkeys"
)

// buildIsPrime mirrors interp_test.go's program: is_divisible/entry
// computing primality by trial division.
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

// paramBufferOneInt builds a .param buffer encoding a single Int32 literal
// argument: u64 len(1) followed by that one Exp.
func paramBufferOneInt(n int32) []byte {
	argsProg := ast.NewProgram()
	idx := argsProg.NewIntConst(n)

	buf := primcodec.EncodeU64(nil, 1)
	buf = argsProg.EncodeExp(buf, ast.ExpFromAexp(idx))
	return buf
}

func TestCertifyThenRunIsPrime211(t *testing.T) {
	p := ast.NewProgram()
	buildIsPrime(p)
	bytecode := p.Bytes()

	verifierKey, err := vimpkeys.GenerateKey()
	require.NoError(t, err)

	cert, err := attest.Certify(bytecode, verifierKey)
	require.NoError(t, err)
	require.Equal(t, uint64(len(bytecode)), cert.BytesRead)

	cache, err := certcache.New(16)
	require.NoError(t, err)
	runner := attest.NewRunner(1024, cache, nil)

	report, err := runner.Run(cert.Bytes, paramBufferOneInt(211))
	require.NoError(t, err)
	require.True(t, report.HasValue)
	require.True(t, report.Value.B)

	pub, err := vimpkeys.PublicKeyFromBytes(report.SessionPub[:])
	require.NoError(t, err)

	sumInput := append(append(append([]byte{}, report.HArgs[:]...), report.HCode[:]...), report.HOut[:]...)
	hashed := sha256.Sum256(sumInput)
	require.True(t, pub.Verify(report.Signature[:], hashed[:]))
}

func TestCertifyThenRunIsPrime222(t *testing.T) {
	p := ast.NewProgram()
	buildIsPrime(p)
	bytecode := p.Bytes()

	verifierKey, err := vimpkeys.GenerateKey()
	require.NoError(t, err)

	cert, err := attest.Certify(bytecode, verifierKey)
	require.NoError(t, err)

	runner := attest.NewRunner(1024, nil, nil)
	report, err := runner.Run(cert.Bytes, paramBufferOneInt(222))
	require.NoError(t, err)
	require.True(t, report.HasValue)
	require.False(t, report.Value.B)
}

func TestRunRejectsTamperedTrailer(t *testing.T) {
	p := ast.NewProgram()
	buildIsPrime(p)
	bytecode := p.Bytes()

	verifierKey, err := vimpkeys.GenerateKey()
	require.NoError(t, err)
	cert, err := attest.Certify(bytecode, verifierKey)
	require.NoError(t, err)

	tampered := make([]byte, len(cert.Bytes))
	copy(tampered, cert.Bytes)
	tampered[len(tampered)-1] ^= 0xFF

	runner := attest.NewRunner(1024, nil, nil)
	_, err = runner.Run(tampered, paramBufferOneInt(211))
	require.ErrorIs(t, err, vimperr.ErrVerifierSignatureInvalid)
}

func TestRunSkipsReverifyOnCacheHit(t *testing.T) {
	p := ast.NewProgram()
	buildIsPrime(p)
	bytecode := p.Bytes()

	verifierKey, err := vimpkeys.GenerateKey()
	require.NoError(t, err)
	cert, err := attest.Certify(bytecode, verifierKey)
	require.NoError(t, err)

	cache, err := certcache.New(16)
	require.NoError(t, err)
	runner := attest.NewRunner(1024, cache, nil)

	_, err = runner.Run(cert.Bytes, paramBufferOneInt(211))
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	_, err = runner.Run(cert.Bytes, paramBufferOneInt(222))
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())
}
