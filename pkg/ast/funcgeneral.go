package ast

import "github.com/nspcc-dev/vimp/pkg/primcodec"

// FnProtoType is a function signature: return type, name, and ordered
// parameter declarations.
type FnProtoType struct {
	RetType DataType
	Name    string
	Params  []VarDecl
}

// ParamTypes returns the ordered parameter types of the prototype, used to
// build an overload key.
func (p FnProtoType) ParamTypes() []DataType {
	out := make([]DataType, len(p.Params))
	for i, d := range p.Params {
		out[i] = d.Type
	}
	return out
}

func encodeFnProtoType(dst []byte, p FnProtoType) []byte {
	dst = append(dst, byte(p.RetType))
	dst = primcodec.EncodeString(dst, p.Name)
	dst = primcodec.EncodeU64(dst, uint64(len(p.Params)))
	for _, d := range p.Params {
		dst = encodeVarDecl(dst, d)
	}
	return dst
}

func decodeFnProtoType(b []byte) (FnProtoType, []byte, error) {
	if len(b) < 1 {
		return FnProtoType{}, nil, errShortInput("fn proto return type byte")
	}
	ret, err := DataTypeFromByte(b[0])
	if err != nil {
		return FnProtoType{}, nil, err
	}
	rest := b[1:]
	name, rest, err := primcodec.DecodeString(rest)
	if err != nil {
		return FnProtoType{}, nil, err
	}
	n, rest, err := primcodec.DecodeU64(rest)
	if err != nil {
		return FnProtoType{}, nil, err
	}
	params := make([]VarDecl, 0, n)
	for i := uint64(0); i < n; i++ {
		var d VarDecl
		d, rest, err = decodeVarDecl(rest)
		if err != nil {
			return FnProtoType{}, nil, err
		}
		params = append(params, d)
	}
	return FnProtoType{RetType: ret, Name: name, Params: params}, rest, nil
}

// FnCall is a call site: a function name and ordered argument expressions,
// referenced by ExpRef into the owning Program's arenas.
type FnCall struct {
	Name string
	Args []ExpRef
}
