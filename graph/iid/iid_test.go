package iid

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/graph/schema"
)

func mustThing(t *testing.T, typeIID Vertex, key uint64) Vertex {
	v, err := NewThing(typeIID, key)
	require.NoError(t, err)
	return v
}

func TestVertexRoundTrip(t *testing.T) {
	person := NewType(schema.EntityType, 7)
	assert.Equal(t, Vertex{30, 0, 7}, person)
	assert.True(t, person.IsType())
	assert.Equal(t, uint16(7), person.ID())

	alice := mustThing(t, person, 42)
	assert.Len(t, alice, ThingLen)
	assert.Equal(t, schema.Entity, alice.Prefix())
	assert.Equal(t, person, alice.Type())
	assert.Equal(t, uint64(42), alice.Key())

	parsed, err := ParseVertex(alice)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(alice))
}

func TestNewThingRejectsRootAndThings(t *testing.T) {
	_, err := NewThing(NewType(schema.ThingType, 0), 1)
	assert.True(t, errors.Is(err, ErrInvalidIID))

	person := NewType(schema.EntityType, 1)
	_, err = NewThing(mustThing(t, person, 1), 1)
	assert.True(t, errors.Is(err, ErrInvalidIID))
}

func TestParseVertexInvalid(t *testing.T) {
	for _, b := range [][]byte{
		nil,
		{30, 0},
		{30, 0, 1, 2},
		{7, 0, 1},
		{110, 7, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1},
	} {
		_, err := ParseVertex(b)
		assert.True(t, errors.Is(err, ErrInvalidIID), "%x", b)
	}
}

func TestEdgeRoundTrip(t *testing.T) {
	person := NewType(schema.EntityType, 1)
	friendship := NewType(schema.RelationType, 2)
	friend := NewType(schema.RoleType, 3)
	rel := mustThing(t, friendship, 9)
	alice := mustThing(t, person, 10)

	cases := []struct {
		name   string
		start  Vertex
		infix  Infix
		end    Vertex
		suffix Suffix
	}{
		{"type edge", person, NewInfix(schema.Sub, schema.Out), NewType(schema.EntityType, 0), nil},
		{"inward", alice, NewInfix(schema.Has, schema.In), rel, nil},
		{"role player", rel, NewRolePlayerInfix(schema.Out, friend), alice, NewSuffix(0)},
		{"large suffix", rel, NewRolePlayerInfix(schema.In, friend), alice, NewSuffix(1 << 40)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			built := NewEdge(c.start, c.infix, c.end, c.suffix)
			parsed, err := ParseEdge(built.Bytes())
			require.NoError(t, err)
			assert.True(t, parsed.Equal(built))
			assert.Equal(t, c.start, parsed.Start())
			assert.Equal(t, c.infix, parsed.Infix())
			assert.Equal(t, c.end, parsed.End())
			assert.Equal(t, c.suffix, parsed.Suffix())
			assert.Equal(t, c.infix.Category(), parsed.Category())
		})
	}
}

func TestEdgeDecodeIsStable(t *testing.T) {
	friend := NewType(schema.RoleType, 3)
	rel := mustThing(t, NewType(schema.RelationType, 2), 9)
	alice := mustThing(t, NewType(schema.EntityType, 1), 10)
	e := NewEdge(rel, NewRolePlayerInfix(schema.Out, friend), alice, NewSuffix(2))

	start, infix, end, suffix := e.Start(), e.Infix(), e.End(), e.Suffix()
	for i := 0; i < 3; i++ {
		assert.Equal(t, start, e.Start())
		assert.Equal(t, infix, e.Infix())
		assert.Equal(t, end, e.End())
		assert.Equal(t, suffix, e.Suffix())
	}
	assert.Equal(t, friend, infix.RoleType())
	assert.Equal(t, uint64(2), suffix.Repetition())

	// sections are capped so appending cannot overwrite the edge
	_ = append(e.Start(), 0xff)
	assert.Equal(t, infix, e.Infix())
}

func TestEdgeReverse(t *testing.T) {
	a := NewType(schema.EntityType, 1)
	b := NewType(schema.EntityType, 2)
	out := NewEdge(a, NewInfix(schema.Sub, schema.Out), b, nil)
	in := out.Reverse()

	assert.Equal(t, b, in.Start())
	assert.Equal(t, a, in.End())
	assert.Equal(t, schema.In, in.Direction())
	assert.Equal(t, schema.Sub, in.Category())
	assert.True(t, in.Reverse().Equal(out))
}

func TestParseEdgeInvalid(t *testing.T) {
	a := NewType(schema.EntityType, 1)
	b := NewType(schema.EntityType, 2)
	valid := NewEdge(a, NewInfix(schema.Sub, schema.Out), b, nil).Bytes()

	for name, raw := range map[string][]byte{
		"shorter than start": valid[:2],
		"no infix":           valid[:3],
		"bad infix":          append(append([]byte{}, a...), 99),
		"truncated end":      valid[:5],
		"outward isa":        append(append(append([]byte{}, a...), byte(schema.Isa)), b...),
		"garbage suffix":     append(append([]byte{}, valid...), 0x00),
		"suffix too long":    append(append([]byte{}, valid...), NewSuffix(1)[0], 0x01),
	} {
		_, err := ParseEdge(raw)
		assert.True(t, errors.Is(err, ErrInvalidIID), name)
	}

	e := &Edge{bytes: valid[:2]}
	assert.Error(t, e.Err())
	assert.Nil(t, e.Start())
	assert.Nil(t, e.Suffix())
}

func TestParseEdgeCopies(t *testing.T) {
	a := NewType(schema.EntityType, 1)
	b := NewType(schema.EntityType, 2)
	raw := NewEdge(a, NewInfix(schema.Sub, schema.Out), b, nil).Bytes()
	buf := append([]byte{}, raw...)
	e, err := ParseEdge(buf)
	require.NoError(t, err)
	buf[0] = 0
	assert.Equal(t, a, e.Start())
}

func TestIndexKeys(t *testing.T) {
	name := NewType(schema.AttributeType, 4)
	assert.Equal(t, []byte{0, 'p', 'e', 'r'}, TypeIndex("per"))
	assert.Equal(t, []byte{1, 40, 0, 4, 'x'}, AttributeIndex(name, []byte("x")))
	assert.Equal(t, []byte{1, 40, 0, 4}, AttributeIndexPrefix(name))
	assert.Equal(t, []byte{255, 't'}, Sequence("t"))

	attr := mustThing(t, name, 5)
	isa := Isa(attr)
	assert.Equal(t, name, isa.Start())
	assert.Equal(t, attr, isa.End())
	assert.Equal(t, schema.Isa, isa.Category())
	assert.Equal(t, IsaPrefix(name), isa.Bytes()[:TypeLen+1])
}

func TestDescribe(t *testing.T) {
	person := NewType(schema.EntityType, 1)
	friend := NewType(schema.RoleType, 3)
	alice := mustThing(t, person, 10)
	rel := mustThing(t, NewType(schema.RelationType, 2), 9)

	assert.Equal(t, "[3:ENTITY_TYPE:1]", Describe(person))
	assert.Equal(t, "[12:ENTITY[3:ENTITY_TYPE:1]:10]", alice.String())
	assert.Equal(t,
		"[12:RELATION[3:RELATION_TYPE:2]:9][4:ROLEPLAYER:OUT[3:ROLE_TYPE:3]][12:ENTITY[3:ENTITY_TYPE:1]:10][1:#0]",
		NewEdge(rel, NewRolePlayerInfix(schema.Out, friend), alice, NewSuffix(0)).String())
	assert.Equal(t, `[1:INDEX_TYPE][6:"person"]`, Describe(TypeIndex("person")))
	assert.Equal(t, "[1:INDEX_ATTRIBUTE][3:ENTITY_TYPE:1][2:6869]", Describe(AttributeIndex(person, []byte("hi"))))
	assert.Equal(t, "[2:0702]", Describe([]byte{7, 2}))
	assert.Equal(t, "[]", Describe(nil))
}
