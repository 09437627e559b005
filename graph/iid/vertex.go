// Package iid encodes and decodes the byte identifiers of vertices, edges
// and index entries. Identifiers compare and order as plain bytes.
package iid

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/util/encoding"
)

const (
	TypeLen  = 1 + 2
	ThingLen = 1 + TypeLen + 8
)

var ErrInvalidIID = errors.New("invalid iid")

// Vertex is a type IID (prefix, uint16 id) or a thing IID (prefix, type IID,
// uint64 key).
type Vertex []byte

// VertexLen returns the length of a vertex IID starting with prefix, or 0
// when prefix is not a vertex prefix.
func VertexLen(prefix schema.Prefix) int {
	switch {
	case prefix.IsType():
		return TypeLen
	case prefix.IsThing():
		return ThingLen
	}
	return 0
}

func NewType(prefix schema.Prefix, id uint16) Vertex {
	b := make([]byte, 1, TypeLen)
	b[0] = byte(prefix)
	return encoding.EncodeUint16Ascending(b, id)
}

// NewThing builds the IID of an instance of typeIID.
func NewThing(typeIID Vertex, key uint64) (Vertex, error) {
	if !typeIID.Valid() || !typeIID.IsType() {
		return nil, errors.Wrapf(ErrInvalidIID, "type %v", typeIID)
	}
	prefix, ok := typeIID.Prefix().Instance()
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIID, "%v has no instances", typeIID.Prefix())
	}
	b := make([]byte, 1, ThingLen)
	b[0] = byte(prefix)
	b = append(b, typeIID...)
	return encoding.EncodeUint64Ascending(b, key), nil
}

// ParseVertex checks that b is exactly one vertex IID and returns a copy.
func ParseVertex(b []byte) (Vertex, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrInvalidIID, "empty vertex")
	}
	n := VertexLen(schema.Prefix(b[0]))
	if n == 0 || len(b) != n {
		return nil, errors.Wrapf(ErrInvalidIID, "vertex %x", b)
	}
	v := Vertex(append([]byte(nil), b...))
	if v.IsThing() && !v.Type().Valid() {
		return nil, errors.Wrapf(ErrInvalidIID, "vertex %x has bad type", b)
	}
	return v, nil
}

// vertexAt returns the length of the vertex IID at the head of b.
func vertexAt(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.Wrap(ErrInvalidIID, "missing vertex")
	}
	n := VertexLen(schema.Prefix(b[0]))
	if n == 0 || len(b) < n {
		return 0, errors.Wrapf(ErrInvalidIID, "truncated vertex %x", b)
	}
	return n, nil
}

func (v Vertex) Valid() bool {
	return len(v) > 0 && len(v) == VertexLen(v.Prefix())
}

func (v Vertex) Prefix() schema.Prefix {
	if len(v) == 0 {
		return 0
	}
	return schema.Prefix(v[0])
}

func (v Vertex) IsType() bool {
	return v.Prefix().IsType()
}

func (v Vertex) IsThing() bool {
	return v.Prefix().IsThing()
}

// Type returns the type IID embedded in a thing IID.
func (v Vertex) Type() Vertex {
	if !v.IsThing() || len(v) != ThingLen {
		return nil
	}
	return v[1 : 1+TypeLen : 1+TypeLen]
}

// ID returns the id of a type IID.
func (v Vertex) ID() uint16 {
	if !v.IsType() {
		return 0
	}
	_, id, _ := encoding.DecodeUint16Ascending(v[1:])
	return id
}

// Key returns the instance key of a thing IID.
func (v Vertex) Key() uint64 {
	if !v.IsThing() || len(v) != ThingLen {
		return 0
	}
	_, key, _ := encoding.DecodeUint64Ascending(v[1+TypeLen:])
	return key
}

func (v Vertex) Equal(o Vertex) bool {
	return bytes.Equal(v, o)
}

func (v Vertex) String() string {
	return Describe(v)
}
