package ast

import "github.com/nspcc-dev/vimp/pkg/primcodec"

// ExpKind discriminates which arena an ExpRef points into.
type ExpKind uint8

const (
	ExpA ExpKind = 0
	ExpB ExpKind = 1
)

// ExpRef is a generic expression reference: a category discriminator plus an
// index into the matching arena (Aexp or Bexp) of the owning Program.
type ExpRef struct {
	Kind ExpKind
	Idx  NodeIdx
}

// DecodeExp parses a one-byte category discriminator followed by the
// matching expression.
func (p *Program) DecodeExp(b []byte) (ExpRef, []byte, error) {
	if len(b) < 1 {
		return ExpRef{}, nil, errShortInput("exp tag")
	}
	switch ExpKind(b[0]) {
	case ExpA:
		idx, rest, err := p.DecodeAexp(b[1:])
		if err != nil {
			return ExpRef{}, nil, err
		}
		return ExpRef{Kind: ExpA, Idx: idx}, rest, nil
	case ExpB:
		idx, rest, err := p.DecodeBexp(b[1:])
		if err != nil {
			return ExpRef{}, nil, err
		}
		return ExpRef{Kind: ExpB, Idx: idx}, rest, nil
	default:
		return ExpRef{}, nil, errBadTag("exp", b[0])
	}
}

// EncodeExp appends e's discriminator and value to dst.
func (p *Program) EncodeExp(dst []byte, e ExpRef) []byte {
	dst = append(dst, byte(e.Kind))
	switch e.Kind {
	case ExpA:
		return p.EncodeAexp(dst, e.Idx)
	case ExpB:
		return p.EncodeBexp(dst, e.Idx)
	default:
		return dst
	}
}

func (p *Program) decodeFnCall(b []byte) (FnCall, []byte, error) {
	name, rest, err := primcodec.DecodeString(b)
	if err != nil {
		return FnCall{}, nil, err
	}
	n, rest, err := primcodec.DecodeU64(rest)
	if err != nil {
		return FnCall{}, nil, err
	}
	args := make([]ExpRef, 0, n)
	for i := uint64(0); i < n; i++ {
		var ref ExpRef
		ref, rest, err = p.DecodeExp(rest)
		if err != nil {
			return FnCall{}, nil, err
		}
		args = append(args, ref)
	}
	return FnCall{Name: name, Args: args}, rest, nil
}

func (p *Program) encodeFnCall(dst []byte, fc FnCall) []byte {
	dst = primcodec.EncodeString(dst, fc.Name)
	dst = primcodec.EncodeU64(dst, uint64(len(fc.Args)))
	for _, a := range fc.Args {
		dst = p.EncodeExp(dst, a)
	}
	return dst
}
