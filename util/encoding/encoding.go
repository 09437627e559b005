// Package encoding provides key encoders whose byte order matches the
// numeric order of the encoded values.
package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	intMin      = 0x80 // 128
	intMax      = 0xfd // 253
	intMaxWidth = 8
	intZero     = intMin + intMaxWidth           // 136
	intSmall    = intMax - intZero - intMaxWidth // 109
)

// EncodeUvarintAscending encodes the uint64 value using a variable length (length-prefixed) representation.
func EncodeUvarintAscending(b []byte, v uint64) []byte {
	switch {
	case v <= intSmall:
		return append(b, intZero+byte(v))
	case v <= 0xff:
		return append(b, intMax-7, byte(v))
	case v <= 0xffff:
		return append(b, intMax-6, byte(v>>8), byte(v))
	case v <= 0xffffff:
		return append(b, intMax-5, byte(v>>16), byte(v>>8), byte(v))
	case v <= 0xffffffff:
		return append(b, intMax-4, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case v <= 0xffffffffff:
		return append(b, intMax-3, byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8),
			byte(v))
	case v <= 0xffffffffffff:
		return append(b, intMax-2, byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16),
			byte(v>>8), byte(v))
	case v <= 0xffffffffffffff:
		return append(b, intMax-1, byte(v>>48), byte(v>>40), byte(v>>32), byte(v>>24),
			byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(b, intMax, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

// DecodeUvarintAscending decodes a varint encoded uint64 from the input buffer.
// The remainder of the input buffer and the decoded uint64 are returned.
func DecodeUvarintAscending(b []byte) ([]byte, uint64, error) {
	if len(b) == 0 {
		return nil, 0, errors.New("insufficient bytes to decode uvarint value")
	}
	length := int(b[0]) - intZero
	if length < 0 {
		return nil, 0, fmt.Errorf("invalid uvarint marker %#x", b[0])
	}
	b = b[1:] // skip length byte
	if length <= intSmall {
		return b, uint64(length), nil
	}
	length -= intSmall
	if length < 0 || length > 8 {
		return nil, 0, fmt.Errorf("invalid uvarint length of %d", length)
	} else if len(b) < length {
		return nil, 0, fmt.Errorf("insufficient bytes to decode uvarint value: %q", b)
	}
	var v uint64
	for _, t := range b[:length] {
		v = (v << 8) | uint64(t)
	}
	return b[length:], v, nil
}

// EncodeUint16Ascending appends the big-endian form of v.
func EncodeUint16Ascending(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

// DecodeUint16Ascending decodes a value written by EncodeUint16Ascending and
// returns the remainder of b.
func DecodeUint16Ascending(b []byte) ([]byte, uint16, error) {
	if len(b) < 2 {
		return nil, 0, fmt.Errorf("insufficient bytes to decode uint16 value: %d", len(b))
	}
	return b[2:], binary.BigEndian.Uint16(b), nil
}

// EncodeUint64Ascending appends the big-endian form of v.
func EncodeUint64Ascending(b []byte, v uint64) []byte {
	return append(b, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// DecodeUint64Ascending decodes a value written by EncodeUint64Ascending and
// returns the remainder of b.
func DecodeUint64Ascending(b []byte) ([]byte, uint64, error) {
	if len(b) < 8 {
		return nil, 0, fmt.Errorf("insufficient bytes to decode uint64 value: %d", len(b))
	}
	return b[8:], binary.BigEndian.Uint64(b), nil
}

// UvarintLen reports how many bytes the uvarint at the head of b occupies,
// without decoding it.
func UvarintLen(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.New("insufficient bytes to decode uvarint value")
	}
	length := int(b[0]) - intZero
	if length < 0 {
		return 0, fmt.Errorf("invalid uvarint marker %#x", b[0])
	}
	if length <= intSmall {
		return 1, nil
	}
	length -= intSmall
	if length > 8 {
		return 0, fmt.Errorf("invalid uvarint length of %d", length)
	}
	return 1 + length, nil
}
