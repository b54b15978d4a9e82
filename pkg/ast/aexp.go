package ast

import "github.com/nspcc-dev/vimp/pkg/primcodec"

// AexpKind tags an arithmetic-expression variant; its numeric value is the
// exact wire tag byte from spec.md §4.2.
type AexpKind uint8

const (
	AexpIntConst AexpKind = 0
	AexpFloConst AexpKind = 1
	AexpAdd      AexpKind = 2
	AexpSub      AexpKind = 3
	AexpMul      AexpKind = 4
	AexpDiv      AexpKind = 5
	AexpMod      AexpKind = 6
	AexpVar      AexpKind = 7
	AexpFnCall   AexpKind = 8
)

// Aexp is an arithmetic expression node. Binary arithmetic variants
// (Add..Mod) share one struct shape with a per-op Kind discriminator rather
// than five near-identical variants, per spec.md §9's BinOp note; the wire
// format is unaffected since each op keeps its own tag byte.
type Aexp struct {
	Kind AexpKind

	IntVal int32
	FloVal float32

	L, R NodeIdx // Aexp indices, valid for Add..Mod

	VarName string  // valid for Var
	Call    FnCall  // valid for FnCall
}

// DecodeAexp parses one Aexp node (and, recursively, its children) from the
// front of b, returning the index of the new node in the arena.
func (p *Program) DecodeAexp(b []byte) (NodeIdx, []byte, error) {
	if len(b) < 1 {
		return NoIdx, nil, errShortInput("aexp tag")
	}
	kind := AexpKind(b[0])
	rest := b[1:]

	switch kind {
	case AexpIntConst:
		v, rest, err := primcodec.DecodeI32(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushAexp(Aexp{Kind: kind, IntVal: v}), rest, nil

	case AexpFloConst:
		v, rest, err := primcodec.DecodeF32(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushAexp(Aexp{Kind: kind, FloVal: v}), rest, nil

	case AexpAdd, AexpSub, AexpMul, AexpDiv, AexpMod:
		lIdx, rest, err := p.DecodeAexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		rIdx, rest, err := p.DecodeAexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushAexp(Aexp{Kind: kind, L: lIdx, R: rIdx}), rest, nil

	case AexpVar:
		name, rest, err := primcodec.DecodeString(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushAexp(Aexp{Kind: kind, VarName: name}), rest, nil

	case AexpFnCall:
		fc, rest, err := p.decodeFnCall(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushAexp(Aexp{Kind: kind, Call: fc}), rest, nil

	default:
		return NoIdx, nil, errBadTag("aexp", b[0])
	}
}

// EncodeAexp appends the node at idx (and its subtree) to dst.
func (p *Program) EncodeAexp(dst []byte, idx NodeIdx) []byte {
	a := p.Aexp(idx)
	dst = append(dst, byte(a.Kind))

	switch a.Kind {
	case AexpIntConst:
		return primcodec.EncodeI32(dst, a.IntVal)
	case AexpFloConst:
		return primcodec.EncodeF32(dst, a.FloVal)
	case AexpAdd, AexpSub, AexpMul, AexpDiv, AexpMod:
		dst = p.EncodeAexp(dst, a.L)
		return p.EncodeAexp(dst, a.R)
	case AexpVar:
		return primcodec.EncodeString(dst, a.VarName)
	case AexpFnCall:
		return p.encodeFnCall(dst, a.Call)
	default:
		return dst
	}
}
