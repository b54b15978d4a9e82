package ast

import "github.com/nspcc-dev/vimp/pkg/primcodec"

// VarDecl is a (type, name) pair introducing a variable in the current
// scope.
type VarDecl struct {
	Type DataType
	Name string
}

// VarRef names a previously declared variable.
type VarRef struct {
	Name string
}

func encodeVarDecl(dst []byte, d VarDecl) []byte {
	dst = append(dst, byte(d.Type))
	return primcodec.EncodeString(dst, d.Name)
}

func decodeVarDecl(b []byte) (VarDecl, []byte, error) {
	if len(b) < 1 {
		return VarDecl{}, nil, errShortInput("var decl type byte")
	}
	typ, err := DataTypeFromByte(b[0])
	if err != nil {
		return VarDecl{}, nil, err
	}
	name, rest, err := primcodec.DecodeString(b[1:])
	if err != nil {
		return VarDecl{}, nil, err
	}
	return VarDecl{Type: typ, Name: name}, rest, nil
}

func encodeVarRef(dst []byte, v VarRef) []byte {
	return primcodec.EncodeString(dst, v.Name)
}

func decodeVarRef(b []byte) (VarRef, []byte, error) {
	name, rest, err := primcodec.DecodeString(b)
	if err != nil {
		return VarRef{}, nil, err
	}
	return VarRef{Name: name}, rest, nil
}
