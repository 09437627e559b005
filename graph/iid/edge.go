package iid

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/util/encoding"
)

// Infix is the edge category code, followed by the role type IID for role
// players.
type Infix []byte

func NewInfix(category schema.Edge, dir schema.Direction) Infix {
	return Infix{category.Code(dir)}
}

func NewRolePlayerInfix(dir schema.Direction, roleType Vertex) Infix {
	b := make([]byte, 1, 1+TypeLen)
	b[0] = schema.RolePlayer.Code(dir)
	return append(b, roleType...)
}

func infixAt(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.Wrap(ErrInvalidIID, "missing infix")
	}
	category, _, ok := schema.ParseCode(b[0])
	if !ok {
		return 0, errors.Wrapf(ErrInvalidIID, "infix code %#x", b[0])
	}
	if category != schema.RolePlayer {
		return 1, nil
	}
	if len(b) < 1+TypeLen || !schema.Prefix(b[1]).IsType() {
		return 0, errors.Wrapf(ErrInvalidIID, "role player infix %x", b)
	}
	return 1 + TypeLen, nil
}

func (i Infix) Category() schema.Edge {
	if len(i) == 0 {
		return 0
	}
	e, _, _ := schema.ParseCode(i[0])
	return e
}

func (i Infix) Direction() schema.Direction {
	if len(i) == 0 {
		return schema.Out
	}
	_, d, _ := schema.ParseCode(i[0])
	return d
}

// RoleType is set only on role player infixes.
func (i Infix) RoleType() Vertex {
	if len(i) != 1+TypeLen {
		return nil
	}
	return Vertex(i[1:])
}

// Reverse returns the infix of the same edge seen from its other end.
func (i Infix) Reverse() Infix {
	if len(i) == 0 {
		return nil
	}
	rv := append(Infix(nil), i...)
	rv[0] = i.Category().Code(i.Direction().Reverse())
	return rv
}

// Suffix distinguishes edges that share start, infix and end.
type Suffix []byte

func NewSuffix(repetition uint64) Suffix {
	return encoding.EncodeUvarintAscending(nil, repetition)
}

func (s Suffix) Repetition() uint64 {
	if len(s) == 0 {
		return 0
	}
	_, v, _ := encoding.DecodeUvarintAscending(s)
	return v
}

// Edge is start‖infix‖end[‖suffix]. The section boundaries are derived from
// the bytes on first use and kept for the life of the value.
type Edge struct {
	bytes []byte

	once      sync.Once
	infixAt   int
	endAt     int
	suffixAt  int
	decodeErr error
}

func NewEdge(start Vertex, infix Infix, end Vertex, suffix Suffix) *Edge {
	b := make([]byte, 0, len(start)+len(infix)+len(end)+len(suffix))
	b = append(b, start...)
	b = append(b, infix...)
	b = append(b, end...)
	b = append(b, suffix...)
	return &Edge{bytes: b}
}

// ParseEdge decodes a copy of b, failing when b is not exactly one edge IID.
func ParseEdge(b []byte) (*Edge, error) {
	e := &Edge{bytes: append([]byte(nil), b...)}
	e.decode()
	if e.decodeErr != nil {
		return nil, e.decodeErr
	}
	return e, nil
}

func (e *Edge) decode() {
	e.once.Do(func() {
		b := e.bytes
		n, err := vertexAt(b)
		if err != nil {
			e.decodeErr = err
			return
		}
		infixLen, err := infixAt(b[n:])
		if err != nil {
			e.decodeErr = err
			return
		}
		end := n + infixLen
		endLen, err := vertexAt(b[end:])
		if err != nil {
			e.decodeErr = err
			return
		}
		suffix := end + endLen
		if suffix < len(b) {
			l, err := encoding.UvarintLen(b[suffix:])
			if err != nil || suffix+l != len(b) {
				e.decodeErr = errors.Wrapf(ErrInvalidIID, "edge suffix %x", b[suffix:])
				return
			}
		}
		e.infixAt, e.endAt, e.suffixAt = n, end, suffix
	})
}

// Err reports whether the bytes failed to decode.
func (e *Edge) Err() error {
	e.decode()
	return e.decodeErr
}

func (e *Edge) Bytes() []byte {
	return e.bytes
}

func (e *Edge) Start() Vertex {
	if e.decode(); e.decodeErr != nil {
		return nil
	}
	return Vertex(e.bytes[:e.infixAt:e.infixAt])
}

func (e *Edge) Infix() Infix {
	if e.decode(); e.decodeErr != nil {
		return nil
	}
	return Infix(e.bytes[e.infixAt:e.endAt:e.endAt])
}

func (e *Edge) End() Vertex {
	if e.decode(); e.decodeErr != nil {
		return nil
	}
	return Vertex(e.bytes[e.endAt:e.suffixAt:e.suffixAt])
}

// Suffix is nil when the edge carries none.
func (e *Edge) Suffix() Suffix {
	if e.decode(); e.decodeErr != nil || e.suffixAt == len(e.bytes) {
		return nil
	}
	return Suffix(e.bytes[e.suffixAt:len(e.bytes):len(e.bytes)])
}

func (e *Edge) Category() schema.Edge {
	return e.Infix().Category()
}

func (e *Edge) Direction() schema.Direction {
	return e.Infix().Direction()
}

// Reverse returns the IID of the same logical edge rooted at its end.
func (e *Edge) Reverse() *Edge {
	return NewEdge(e.End(), e.Infix().Reverse(), e.Start(), e.Suffix())
}

func (e *Edge) Equal(o *Edge) bool {
	return bytes.Equal(e.bytes, o.bytes)
}

func (e *Edge) String() string {
	return Describe(e.bytes)
}
