// Package schema names the byte codes that make up graph keys: vertex
// prefixes, index prefixes, edge categories and directions.
package schema

import "fmt"

type Status uint8

const (
	Buffered Status = iota + 1
	Persisted
)

func (s Status) String() string {
	switch s {
	case Buffered:
		return "BUFFERED"
	case Persisted:
		return "PERSISTED"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Prefix is the first byte of every key.
type Prefix byte

const (
	IndexType      Prefix = 0
	IndexAttribute Prefix = 1

	ThingType     Prefix = 20
	EntityType    Prefix = 30
	AttributeType Prefix = 40
	RelationType  Prefix = 50
	RoleType      Prefix = 60

	Entity    Prefix = 110
	Attribute Prefix = 120
	Relation  Prefix = 130
	Role      Prefix = 140

	Sequence Prefix = 255
)

var prefixNames = map[Prefix]string{
	IndexType:      "INDEX_TYPE",
	IndexAttribute: "INDEX_ATTRIBUTE",
	ThingType:      "THING_TYPE",
	EntityType:     "ENTITY_TYPE",
	AttributeType:  "ATTRIBUTE_TYPE",
	RelationType:   "RELATION_TYPE",
	RoleType:       "ROLE_TYPE",
	Entity:         "ENTITY",
	Attribute:      "ATTRIBUTE",
	Relation:       "RELATION",
	Role:           "ROLE",
	Sequence:       "SEQUENCE",
}

func (p Prefix) String() string {
	if name, ok := prefixNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Prefix(%d)", byte(p))
}

func (p Prefix) IsType() bool {
	switch p {
	case ThingType, EntityType, AttributeType, RelationType, RoleType:
		return true
	}
	return false
}

func (p Prefix) IsThing() bool {
	switch p {
	case Entity, Attribute, Relation, Role:
		return true
	}
	return false
}

func (p Prefix) IsVertex() bool {
	return p.IsType() || p.IsThing()
}

// Instance returns the prefix of things whose type has prefix p. The root
// thing type has no instances.
func (p Prefix) Instance() (Prefix, bool) {
	switch p {
	case EntityType:
		return Entity, true
	case AttributeType:
		return Attribute, true
	case RelationType:
		return Relation, true
	case RoleType:
		return Role, true
	}
	return 0, false
}

// Direction of an edge as seen from the vertex its key starts with.
type Direction uint8

const (
	Out Direction = iota
	In
)

func (d Direction) String() string {
	if d == In {
		return "IN"
	}
	return "OUT"
}

func (d Direction) Reverse() Direction {
	if d == In {
		return Out
	}
	return In
}

// Edge is an edge category code. The inward infix sets inBit.
type Edge byte

const inBit = 0x80

const (
	Isa Edge = 10

	Sub     Edge = 20
	Owns    Edge = 21
	OwnsKey Edge = 22
	Plays   Edge = 23
	Relates Edge = 24

	Has        Edge = 50
	Playing    Edge = 51
	Relating   Edge = 52
	RolePlayer Edge = 53
)

var edgeNames = map[Edge]string{
	Isa:        "ISA",
	Sub:        "SUB",
	Owns:       "OWNS",
	OwnsKey:    "OWNS_KEY",
	Plays:      "PLAYS",
	Relates:    "RELATES",
	Has:        "HAS",
	Playing:    "PLAYING",
	Relating:   "RELATING",
	RolePlayer: "ROLEPLAYER",
}

func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Edge(%d)", byte(e))
}

func (e Edge) Valid() bool {
	_, ok := edgeNames[e]
	return ok
}

// IsType reports whether both ends of the edge are type vertices.
func (e Edge) IsType() bool {
	return e >= Sub && e <= Relates
}

func (e Edge) IsThing() bool {
	return e >= Has && e <= RolePlayer
}

// Code returns the infix byte for the given direction.
func (e Edge) Code(d Direction) byte {
	if d == In {
		return byte(e) | inBit
	}
	return byte(e)
}

// ParseCode is the inverse of Code.
func ParseCode(b byte) (Edge, Direction, bool) {
	e, d := Edge(b&^inBit), Out
	if b&inBit != 0 {
		d = In
	}
	if !e.Valid() || (e == Isa && d == Out) {
		return 0, 0, false
	}
	return e, d, true
}

var (
	// TypeEdges connect type vertices.
	TypeEdges = []Edge{Sub, Owns, OwnsKey, Plays, Relates}
	// ThingEdges connect thing vertices.
	ThingEdges = []Edge{Has, Playing, Relating, RolePlayer}
)
