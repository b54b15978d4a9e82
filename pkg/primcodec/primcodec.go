// Package primcodec implements the tagged primitive wire format shared by
// every other package in the pipeline: a one-byte category+size tag
// followed by a little-endian payload. Every decoder is a pure function of
// its input slice; none of them retain state across calls, mirroring the
// sticky-writer/reader shape of the teacher's pkg/io binary readers but
// without the sticky-error accumulator, since spec.md requires callers to
// observe exactly how many bytes a given decode consumed.
package primcodec

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

// Tag category bits.
const (
	catUnsigned = 0x10
	catSigned   = 0x20
	catFloat    = 0x40
	catObject   = 0x80
)

// Size ids, packed into the low nibble of a tag byte.
const (
	size1   = 0
	size8   = 1
	size16  = 2
	size32  = 3
	size64  = 4
	size128 = 5
)

// Object ids, packed into the low nibble of a catObject tag byte.
const objString = 0

// Tag bytes for the five primitives the wire format carries.
const (
	TagI32    = catSigned | size32
	TagF32    = catFloat | size32
	TagU64    = catUnsigned | size64
	TagBool   = catUnsigned | size1
	TagString = catObject | objString
)

func expectTag(b []byte, tag byte, what string) ([]byte, error) {
	if len(b) < 1 {
		return nil, fmt.Errorf("%w: %s tag", vimperr.ErrShortInput, what)
	}
	if b[0] != tag {
		return nil, fmt.Errorf("%w: expected %s tag 0x%02x, got 0x%02x", vimperr.ErrBadTag, what, tag, b[0])
	}
	return b[1:], nil
}

// EncodeI32 appends the tagged encoding of v to dst and returns the result.
func EncodeI32(dst []byte, v int32) []byte {
	dst = append(dst, TagI32)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return append(dst, buf[:]...)
}

// DecodeI32 parses a tagged int32 from the front of b, returning the value
// and the unconsumed remainder.
func DecodeI32(b []byte) (int32, []byte, error) {
	rest, err := expectTag(b, TagI32, "i32")
	if err != nil {
		return 0, nil, err
	}
	if len(rest) < 4 {
		return 0, nil, fmt.Errorf("%w: i32 payload", vimperr.ErrShortInput)
	}
	v := int32(binary.LittleEndian.Uint32(rest[:4]))
	return v, rest[4:], nil
}

// EncodeF32 appends the tagged encoding of v to dst and returns the result.
func EncodeF32(dst []byte, v float32) []byte {
	dst = append(dst, TagF32)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return append(dst, buf[:]...)
}

// DecodeF32 parses a tagged float32 from the front of b.
func DecodeF32(b []byte) (float32, []byte, error) {
	rest, err := expectTag(b, TagF32, "f32")
	if err != nil {
		return 0, nil, err
	}
	if len(rest) < 4 {
		return 0, nil, fmt.Errorf("%w: f32 payload", vimperr.ErrShortInput)
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(rest[:4]))
	return v, rest[4:], nil
}

// EncodeU64 appends the tagged encoding of v to dst and returns the result.
func EncodeU64(dst []byte, v uint64) []byte {
	dst = append(dst, TagU64)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// DecodeU64 parses a tagged uint64 from the front of b.
func DecodeU64(b []byte) (uint64, []byte, error) {
	rest, err := expectTag(b, TagU64, "u64")
	if err != nil {
		return 0, nil, err
	}
	if len(rest) < 8 {
		return 0, nil, fmt.Errorf("%w: u64 payload", vimperr.ErrShortInput)
	}
	v := binary.LittleEndian.Uint64(rest[:8])
	return v, rest[8:], nil
}

// EncodeBool appends the tagged encoding of v to dst and returns the result.
func EncodeBool(dst []byte, v bool) []byte {
	dst = append(dst, TagBool)
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// DecodeBool parses a tagged bool from the front of b.
func DecodeBool(b []byte) (bool, []byte, error) {
	rest, err := expectTag(b, TagBool, "bool")
	if err != nil {
		return false, nil, err
	}
	if len(rest) < 1 {
		return false, nil, fmt.Errorf("%w: bool payload", vimperr.ErrShortInput)
	}
	return rest[0] != 0, rest[1:], nil
}

// EncodeString appends the tagged, length-prefixed encoding of s to dst.
func EncodeString(dst []byte, s string) []byte {
	dst = append(dst, TagString)
	dst = EncodeU64(dst, uint64(len(s)))
	return append(dst, s...)
}

// DecodeString parses a tagged, length-prefixed UTF-8 string from the front
// of b.
func DecodeString(b []byte) (string, []byte, error) {
	rest, err := expectTag(b, TagString, "string")
	if err != nil {
		return "", nil, err
	}
	n, rest, err := DecodeU64(rest)
	if err != nil {
		return "", nil, err
	}
	if uint64(len(rest)) < n {
		return "", nil, fmt.Errorf("%w: string payload", vimperr.ErrShortInput)
	}
	raw := rest[:n]
	if !utf8.Valid(raw) {
		return "", nil, fmt.Errorf("%w: string payload", vimperr.ErrBadUTF8)
	}
	return string(raw), rest[n:], nil
}
