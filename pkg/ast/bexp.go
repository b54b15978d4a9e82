package ast

import "github.com/nspcc-dev/vimp/pkg/primcodec"

// BexpKind tags a boolean-expression variant; its numeric value is the exact
// wire tag byte from spec.md §4.2.
type BexpKind uint8

const (
	BexpBoolConst BexpKind = 0
	BexpBeq       BexpKind = 1
	BexpBneq      BexpKind = 2
	BexpAnd       BexpKind = 3
	BexpOr        BexpKind = 4
	BexpNot       BexpKind = 5
	BexpAeq       BexpKind = 6
	BexpAneq      BexpKind = 7
	BexpLt        BexpKind = 8
	BexpLte       BexpKind = 9
	BexpGt        BexpKind = 10
	BexpGte       BexpKind = 11
	BexpVar       BexpKind = 12
	BexpFnCall    BexpKind = 13
)

// Bexp is a boolean expression node. For Beq/Bneq/And/Or, L and R index into
// the Bexp arena; for Aeq/Aneq/Lt/Lte/Gt/Gte they index into the Aexp arena
// instead (the operands being compared). Not uses L only (as a Bexp index).
type Bexp struct {
	Kind BexpKind

	BoolVal bool
	L, R    NodeIdx

	VarName string
	Call    FnCall
}

// DecodeBexp parses one Bexp node (and its children) from the front of b.
func (p *Program) DecodeBexp(b []byte) (NodeIdx, []byte, error) {
	if len(b) < 1 {
		return NoIdx, nil, errShortInput("bexp tag")
	}
	kind := BexpKind(b[0])
	rest := b[1:]

	switch kind {
	case BexpBoolConst:
		v, rest, err := primcodec.DecodeBool(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushBexp(Bexp{Kind: kind, BoolVal: v}), rest, nil

	case BexpBeq, BexpBneq, BexpAnd, BexpOr:
		lIdx, rest, err := p.DecodeBexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		rIdx, rest, err := p.DecodeBexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushBexp(Bexp{Kind: kind, L: lIdx, R: rIdx}), rest, nil

	case BexpNot:
		eIdx, rest, err := p.DecodeBexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushBexp(Bexp{Kind: kind, L: eIdx}), rest, nil

	case BexpAeq, BexpAneq, BexpLt, BexpLte, BexpGt, BexpGte:
		lIdx, rest, err := p.DecodeAexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		rIdx, rest, err := p.DecodeAexp(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushBexp(Bexp{Kind: kind, L: lIdx, R: rIdx}), rest, nil

	case BexpVar:
		name, rest, err := primcodec.DecodeString(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushBexp(Bexp{Kind: kind, VarName: name}), rest, nil

	case BexpFnCall:
		fc, rest, err := p.decodeFnCall(rest)
		if err != nil {
			return NoIdx, nil, err
		}
		return p.pushBexp(Bexp{Kind: kind, Call: fc}), rest, nil

	default:
		return NoIdx, nil, errBadTag("bexp", b[0])
	}
}

// EncodeBexp appends the node at idx (and its subtree) to dst.
func (p *Program) EncodeBexp(dst []byte, idx NodeIdx) []byte {
	bx := p.Bexp(idx)
	dst = append(dst, byte(bx.Kind))

	switch bx.Kind {
	case BexpBoolConst:
		return primcodec.EncodeBool(dst, bx.BoolVal)
	case BexpBeq, BexpBneq, BexpAnd, BexpOr:
		dst = p.EncodeBexp(dst, bx.L)
		return p.EncodeBexp(dst, bx.R)
	case BexpNot:
		return p.EncodeBexp(dst, bx.L)
	case BexpAeq, BexpAneq, BexpLt, BexpLte, BexpGt, BexpGte:
		dst = p.EncodeAexp(dst, bx.L)
		return p.EncodeAexp(dst, bx.R)
	case BexpVar:
		return primcodec.EncodeString(dst, bx.VarName)
	case BexpFnCall:
		return p.encodeFnCall(dst, bx.Call)
	default:
		return dst
	}
}
