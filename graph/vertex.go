package graph

import (
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// valueMarker heads every stored value so that no value is empty.
const valueMarker byte = 0x01

func encodeValue(payload []byte) []byte {
	b := make([]byte, 0, 1+len(payload))
	b = append(b, valueMarker)
	return append(b, payload...)
}

func decodeValue(raw []byte) ([]byte, error) {
	if len(raw) == 0 || raw[0] != valueMarker {
		return nil, errors.Wrapf(ErrInvalidValue, "value %x", raw)
	}
	return raw[1:], nil
}

// Vertex is either buffered, created by the current transaction, or
// persisted, read from the store. The two are told apart by Status.
type Vertex interface {
	IID() iid.Vertex
	Prefix() schema.Prefix
	Status() schema.Status

	IsInferred() bool
	// SetInferred fails with ErrIllegalOperation on a persisted vertex.
	SetInferred(inferred bool) error

	// Label is empty for things.
	Label() string
	// Value is nil for everything but attributes.
	Value() []byte

	Outs() Adjacency
	Ins() Adjacency

	// Commit adds the keys of the vertex and of its buffered edges to
	// batch. Attributes and ownership edges need a held guard.
	Commit(batch kvstore.KVBatch, guard *AttributeGuard) error

	// Delete removes every edge of the vertex, then the vertex.
	Delete() error

	base() *vertexBase
}

type vertexBase struct {
	mgr     *Manager
	iid     iid.Vertex
	payload []byte
	outs    Adjacency
	ins     Adjacency
	deleted bool
}

func (v *vertexBase) IID() iid.Vertex       { return v.iid }
func (v *vertexBase) Prefix() schema.Prefix { return v.iid.Prefix() }
func (v *vertexBase) Outs() Adjacency       { return v.outs }
func (v *vertexBase) Ins() Adjacency        { return v.ins }
func (v *vertexBase) base() *vertexBase     { return v }

func (v *vertexBase) Label() string {
	if !v.iid.IsType() {
		return ""
	}
	return string(v.payload)
}

func (v *vertexBase) Value() []byte {
	if v.Prefix() != schema.Attribute {
		return nil
	}
	return v.payload
}

func (v *vertexBase) String() string {
	return v.iid.String()
}

// indexKeys lists the secondary index entries of the vertex with their
// values.
func (v *vertexBase) indexKeys() [][2][]byte {
	switch {
	case v.iid.IsType():
		return [][2][]byte{{iid.TypeIndex(string(v.payload)), v.iid}}
	case v.Prefix() == schema.Attribute:
		return [][2][]byte{
			{iid.Isa(v.iid).Bytes(), edgeMarker},
			{iid.AttributeIndex(v.iid.Type(), v.payload), v.iid},
		}
	default:
		return [][2][]byte{{iid.Isa(v.iid).Bytes(), edgeMarker}}
	}
}

func (v *vertexBase) commitEdges(batch kvstore.KVBatch, guard *AttributeGuard) error {
	for _, adj := range []Adjacency{v.outs, v.ins} {
		for _, e := range adj.buffered().all() {
			if err := e.commit(batch, guard); err != nil {
				return err
			}
		}
	}
	return nil
}

type bufferedVertex struct {
	vertexBase
	inferred  bool
	committed bool
}

func newBufferedVertex(mgr *Manager, id iid.Vertex, payload []byte) *bufferedVertex {
	v := &bufferedVertex{vertexBase: vertexBase{mgr: mgr, iid: id, payload: payload}}
	v.outs = newBufferedAdjacency(v, schema.Out)
	v.ins = newBufferedAdjacency(v, schema.In)
	return v
}

func (v *bufferedVertex) Status() schema.Status { return schema.Buffered }
func (v *bufferedVertex) IsInferred() bool      { return v.inferred }

func (v *bufferedVertex) SetInferred(inferred bool) error {
	v.inferred = inferred
	return nil
}

func (v *bufferedVertex) Commit(batch kvstore.KVBatch, guard *AttributeGuard) error {
	if v.deleted {
		return nil
	}
	if v.inferred {
		return errors.Wrapf(ErrIllegalOperation, "commit of inferred vertex %v", v.iid)
	}
	if !v.committed {
		if v.Prefix() == schema.Attribute && !guard.Held() {
			return errors.Wrapf(ErrAttributeLockNotHeld, "attribute %v", v.iid)
		}
		batch.Set(v.iid, encodeValue(v.payload))
		for _, kv := range v.indexKeys() {
			batch.Set(kv[0], kv[1])
		}
		v.committed = true
		v.mgr.committedVertices++
	}
	return v.commitEdges(batch, guard)
}

func (v *bufferedVertex) Delete() error {
	return v.mgr.deleteVertex(v)
}

type persistedVertex struct {
	vertexBase
}

func newPersistedVertex(mgr *Manager, id iid.Vertex, payload []byte) *persistedVertex {
	v := &persistedVertex{vertexBase: vertexBase{mgr: mgr, iid: id, payload: payload}}
	v.outs = newPersistedAdjacency(mgr, v, schema.Out)
	v.ins = newPersistedAdjacency(mgr, v, schema.In)
	return v
}

func (v *persistedVertex) Status() schema.Status { return schema.Persisted }
func (v *persistedVertex) IsInferred() bool      { return false }

func (v *persistedVertex) SetInferred(inferred bool) error {
	return errors.Wrapf(ErrIllegalOperation, "set inferred on persisted vertex %v", v.iid)
}

// Commit writes only the edges added to the vertex by this transaction.
func (v *persistedVertex) Commit(batch kvstore.KVBatch, guard *AttributeGuard) error {
	if v.deleted {
		return nil
	}
	return v.commitEdges(batch, guard)
}

func (v *persistedVertex) Delete() error {
	return v.mgr.deleteVertex(v)
}

// written reports whether the key of v is in the store or in the batch being
// built.
func written(v Vertex) bool {
	switch vv := v.(type) {
	case *bufferedVertex:
		return vv.committed
	case *persistedVertex:
		return true
	}
	return false
}
