package iid

import (
	"github.com/tiglabs/baudgraph/graph/schema"
)

// TypeIndex maps a type label to its type IID.
func TypeIndex(label string) []byte {
	b := make([]byte, 1, 1+len(label))
	b[0] = byte(schema.IndexType)
	return append(b, label...)
}

// AttributeIndex maps an attribute type and value to the attribute IID.
func AttributeIndex(typeIID Vertex, value []byte) []byte {
	b := make([]byte, 1, 1+len(typeIID)+len(value))
	b[0] = byte(schema.IndexAttribute)
	b = append(b, typeIID...)
	return append(b, value...)
}

// AttributeIndexPrefix covers every attribute index entry of typeIID.
func AttributeIndexPrefix(typeIID Vertex) []byte {
	return AttributeIndex(typeIID, nil)
}

// Sequence holds the high-water mark of the named id sequence.
func Sequence(name string) []byte {
	b := make([]byte, 1, 1+len(name))
	b[0] = byte(schema.Sequence)
	return append(b, name...)
}

// Isa is the index entry listing thing under its type.
func Isa(thing Vertex) *Edge {
	return NewEdge(thing.Type(), NewInfix(schema.Isa, schema.In), thing, nil)
}

// IsaPrefix covers the Isa entries of typeIID.
func IsaPrefix(typeIID Vertex) []byte {
	return append(append([]byte(nil), typeIID...), schema.Isa.Code(schema.In))
}
