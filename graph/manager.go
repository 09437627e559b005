package graph

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/idgen"
	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

// Manager is one transaction over the graph. It owns every buffered vertex
// and edge it creates and must be used by one goroutine at a time. Reads of
// stored data go straight to the store: each scan is consistent on its own,
// and each read sees the latest committed state.
type Manager struct {
	id    uuid.UUID
	db    *Database
	store kvstore.KVStore

	// vertices caches every vertex handed out, buffered or persisted.
	vertices   map[string]Vertex
	buffered   []*bufferedVertex
	persisted  []*persistedVertex
	edges      []*Edge
	labels     map[string]*bufferedVertex
	attributes map[string]*bufferedVertex

	// deletes are applied before every write of the commit; hidden holds the
	// same keys so reads skip them.
	deletes [][]byte
	hidden  map[string]struct{}

	// sequences drawn from; their marks are staged at commit.
	sequences map[string]*idgen.Sequence

	committedVertices int
	committedEdges    int
	closed            bool
}

func newManager(db *Database) *Manager {
	m := &Manager{
		id:         uuid.New(),
		db:         db,
		store:      db.store,
		vertices:   make(map[string]Vertex),
		labels:     make(map[string]*bufferedVertex),
		attributes: make(map[string]*bufferedVertex),
		hidden:     make(map[string]struct{}),
		sequences:  make(map[string]*idgen.Sequence),
	}
	log.Debug("transaction[%s] begin", m.id)
	return m
}

func (m *Manager) ID() uuid.UUID {
	return m.id
}

func (m *Manager) Closed() bool {
	return m.closed
}

// CreateTypeVertex creates a buffered type vertex under a label unique among
// all types.
func (m *Manager) CreateTypeVertex(prefix schema.Prefix, label string) (Vertex, error) {
	if m.closed {
		return nil, ErrTxClosed
	}
	if !prefix.IsType() || label == "" {
		return nil, errors.Wrapf(ErrIllegalOperation, "type vertex %v %q", prefix, label)
	}
	existing, err := m.GetTypeVertex(label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Wrapf(ErrLabelTaken, "label %q", label)
	}
	id, err := m.sequence(typeSequence(prefix), math.MaxUint16).GenID()
	if err != nil {
		return nil, err
	}
	v := newBufferedVertex(m, iid.NewType(prefix, uint16(id)), []byte(label))
	m.addBuffered(v)
	m.labels[label] = v
	return v, nil
}

// CreateThingVertex creates a buffered instance of typeIID. Attributes are
// created through PutAttribute.
func (m *Manager) CreateThingVertex(typeIID iid.Vertex) (Vertex, error) {
	t, err := m.typeVertex(typeIID)
	if err != nil {
		return nil, err
	}
	if t.Prefix() == schema.AttributeType {
		return nil, errors.Wrapf(ErrIllegalOperation, "attribute of %v without value", typeIID)
	}
	v, err := m.createThing(t, nil)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// PutAttribute returns the attribute of attributeType holding value, creating
// a buffered one when neither this transaction nor the store has it.
func (m *Manager) PutAttribute(attributeType iid.Vertex, value []byte) (Vertex, error) {
	t, err := m.typeVertex(attributeType)
	if err != nil {
		return nil, err
	}
	if t.Prefix() != schema.AttributeType {
		return nil, errors.Wrapf(ErrIllegalOperation, "attribute of %v", attributeType)
	}
	index := iid.AttributeIndex(attributeType, value)
	if v, ok := m.attributes[string(index)]; ok {
		return v, nil
	}
	if !m.isHidden(index) {
		raw, err := m.store.Get(index)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			v, err := m.GetVertex(raw)
			if err != nil || v != nil {
				return v, err
			}
		}
	}
	v, err := m.createThing(t, append([]byte(nil), value...))
	if err != nil {
		return nil, err
	}
	m.attributes[string(index)] = v
	return v, nil
}

func (m *Manager) typeVertex(typeIID iid.Vertex) (Vertex, error) {
	t, err := m.GetVertex(typeIID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.Wrapf(ErrVertexNotFound, "type %v", typeIID)
	}
	if !t.IID().IsType() {
		return nil, errors.Wrapf(ErrIllegalOperation, "%v is not a type", typeIID)
	}
	return t, nil
}

func (m *Manager) createThing(t Vertex, payload []byte) (*bufferedVertex, error) {
	if _, ok := t.Prefix().Instance(); !ok {
		return nil, errors.Wrapf(ErrIllegalOperation, "instance of %v", t.IID())
	}
	key, err := m.sequence(thingSequence(t.IID()), 0).GenID()
	if err != nil {
		return nil, err
	}
	id, err := iid.NewThing(t.IID(), key)
	if err != nil {
		return nil, err
	}
	v := newBufferedVertex(m, id, payload)
	m.addBuffered(v)
	return v, nil
}

func (m *Manager) addBuffered(v *bufferedVertex) {
	m.vertices[string(v.iid)] = v
	m.buffered = append(m.buffered, v)
}

func (m *Manager) sequence(name string, max uint64) *idgen.Sequence {
	seq := m.db.seqs.Get(name, max)
	m.sequences[name] = seq
	return seq
}

func typeSequence(prefix schema.Prefix) string {
	return fmt.Sprintf("type/%d", byte(prefix))
}

func thingSequence(typeIID iid.Vertex) string {
	return fmt.Sprintf("thing/%x", []byte(typeIID))
}

// GetVertex returns the buffered vertex with the IID, or the stored one, or
// nil when neither exists.
func (m *Manager) GetVertex(id iid.Vertex) (Vertex, error) {
	if m.closed {
		return nil, ErrTxClosed
	}
	if !id.Valid() {
		return nil, errors.Wrapf(iid.ErrInvalidIID, "vertex %x", []byte(id))
	}
	if m.isHidden(id) {
		return nil, nil
	}
	if v, ok := m.vertices[string(id)]; ok {
		if v.base().deleted {
			return nil, nil
		}
		return v, nil
	}
	raw, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	payload, err := decodeValue(raw)
	if err != nil {
		return nil, err
	}
	v := newPersistedVertex(m, append(iid.Vertex(nil), id...), payload)
	m.vertices[string(id)] = v
	m.persisted = append(m.persisted, v)
	return v, nil
}

// resolve is GetVertex for IIDs read from stored edges, which must exist.
func (m *Manager) resolve(id iid.Vertex) (Vertex, error) {
	v, err := m.GetVertex(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.Wrapf(ErrVertexNotFound, "vertex %v", id)
	}
	return v, nil
}

// GetTypeVertex looks a type up by label.
func (m *Manager) GetTypeVertex(label string) (Vertex, error) {
	if m.closed {
		return nil, ErrTxClosed
	}
	if v, ok := m.labels[label]; ok && !v.deleted {
		return v, nil
	}
	raw, err := m.store.Get(iid.TypeIndex(label))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return m.GetVertex(raw)
}

// Instances lists the things of a type, stored ones first.
func (m *Manager) Instances(typeIID iid.Vertex) ([]Vertex, error) {
	return m.instances(typeIID, 0)
}

func (m *Manager) instances(typeIID iid.Vertex, limit int) ([]Vertex, error) {
	if _, err := m.typeVertex(typeIID); err != nil {
		return nil, err
	}
	var (
		rv   []Vertex
		keys []*iid.Edge
	)
	it := m.store.PrefixIterator(iid.IsaPrefix(typeIID))
	for ; it.Valid(); it.Next() {
		key, err := iid.ParseEdge(it.Key())
		if err != nil {
			it.Close()
			return nil, err
		}
		if !m.isHidden(key.Bytes()) {
			keys = append(keys, key)
		}
		if limit > 0 && len(keys) >= limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		it.Close()
		return nil, err
	}
	if err := it.Close(); err != nil {
		return nil, err
	}
	for _, key := range keys {
		v, err := m.resolve(key.End())
		if err != nil {
			return nil, err
		}
		rv = append(rv, v)
	}
	for _, v := range m.buffered {
		if limit > 0 && len(rv) >= limit {
			break
		}
		if !v.deleted && v.iid.IsThing() && v.iid.Type().Equal(typeIID) {
			rv = append(rv, v)
		}
	}
	return rv, nil
}

type edgeOptions struct {
	suffix   iid.Suffix
	roleType iid.Vertex
	inferred bool
}

type EdgeOption func(*edgeOptions)

// WithSuffix tells apart repeated edges between the same two vertices.
func WithSuffix(repetition uint64) EdgeOption {
	return func(o *edgeOptions) {
		o.suffix = iid.NewSuffix(repetition)
	}
}

// WithRoleType is required by role player edges.
func WithRoleType(roleType iid.Vertex) EdgeOption {
	return func(o *edgeOptions) {
		o.roleType = roleType
	}
}

// Inferred marks the edge as derived; it is never committed.
func Inferred() EdgeOption {
	return func(o *edgeOptions) {
		o.inferred = true
	}
}

// PutEdge adds a buffered edge from -> to to both adjacencies. An edge with
// the same IID that already exists is returned instead.
func (m *Manager) PutEdge(category schema.Edge, from, to Vertex, opts ...EdgeOption) (*Edge, error) {
	if m.closed {
		return nil, ErrTxClosed
	}
	var o edgeOptions
	for _, opt := range opts {
		opt(&o)
	}
	infix, err := m.checkEdge(category, from, to, &o)
	if err != nil {
		return nil, err
	}

	e := newBufferedEdge(m, category, from, to, infix, o.suffix, o.inferred)
	if existing := from.Outs().buffered().get(e.out.Bytes()); existing != nil {
		if existing.inferred && !o.inferred {
			existing.inferred = false
		}
		return existing, nil
	}
	if from.Status() == schema.Persisted && to.Status() == schema.Persisted && !m.isHidden(e.out.Bytes()) {
		raw, err := m.store.Get(e.out.Bytes())
		if err != nil {
			return nil, err
		}
		if raw != nil {
			return newPersistedEdge(m, e.out, from, to), nil
		}
	}
	from.Outs().buffered().put(e.out, e)
	to.Ins().buffered().put(e.in, e)
	m.edges = append(m.edges, e)
	return e, nil
}

func (m *Manager) checkEdge(category schema.Edge, from, to Vertex, o *edgeOptions) (iid.Infix, error) {
	if from == nil || to == nil {
		return nil, errors.Wrapf(ErrIllegalOperation, "%v edge with a nil end", category)
	}
	if from.base().mgr != m || to.base().mgr != m {
		return nil, errors.Wrapf(ErrIllegalOperation, "%v edge across transactions", category)
	}
	if from.base().deleted || to.base().deleted {
		return nil, errors.Wrapf(ErrIllegalOperation, "%v edge to a deleted vertex", category)
	}
	switch {
	case category.IsType():
		if !from.IID().IsType() || !to.IID().IsType() {
			return nil, errors.Wrapf(ErrIllegalOperation, "%v edge between %v and %v", category, from.Prefix(), to.Prefix())
		}
	case category.IsThing():
		if !from.IID().IsThing() || !to.IID().IsThing() {
			return nil, errors.Wrapf(ErrIllegalOperation, "%v edge between %v and %v", category, from.Prefix(), to.Prefix())
		}
	default:
		return nil, errors.Wrapf(ErrIllegalOperation, "%v edge", category)
	}
	if category == schema.Has && to.Prefix() != schema.Attribute {
		return nil, errors.Wrapf(ErrIllegalOperation, "has edge to %v", to.Prefix())
	}
	if category != schema.RolePlayer {
		if o.roleType != nil {
			return nil, errors.Wrapf(ErrIllegalOperation, "role type on %v edge", category)
		}
		return iid.NewInfix(category, schema.Out), nil
	}
	if o.roleType.Prefix() != schema.RoleType || !o.roleType.Valid() {
		return nil, errors.Wrapf(ErrIllegalOperation, "role player edge with role type %v", o.roleType)
	}
	return iid.NewRolePlayerInfix(schema.Out, o.roleType), nil
}

func (m *Manager) deleteVertex(v Vertex) error {
	if m.closed {
		return ErrTxClosed
	}
	b := v.base()
	if b.deleted {
		return nil
	}
	categories := schema.ThingEdges
	if b.iid.IsType() {
		instances, err := m.instances(b.iid, 1)
		if err != nil {
			return err
		}
		if len(instances) > 0 {
			return errors.Wrapf(ErrIllegalOperation, "delete of type %q with instances", b.Label())
		}
		categories = schema.TypeEdges
	}

	var edges []*Edge
	for _, adj := range []Adjacency{b.outs, b.ins} {
		for _, category := range categories {
			it := adj.Edges(category)
			for it.Next() {
				edges = append(edges, it.Edge())
			}
			if err := it.Close(); err != nil {
				return err
			}
		}
	}
	for _, e := range edges {
		if err := e.Delete(); err != nil {
			return err
		}
	}

	b.deleted = true
	if v.Status() == schema.Buffered {
		delete(m.vertices, string(b.iid))
		if b.iid.IsType() {
			delete(m.labels, string(b.payload))
		}
		if v.Prefix() == schema.Attribute {
			delete(m.attributes, string(iid.AttributeIndex(b.iid.Type(), b.payload)))
		}
		return nil
	}
	m.stageDelete(b.iid)
	for _, kv := range b.indexKeys() {
		m.stageDelete(kv[0])
	}
	return nil
}

func (m *Manager) stageDelete(key []byte) {
	if m.isHidden(key) {
		return
	}
	key = append([]byte(nil), key...)
	m.deletes = append(m.deletes, key)
	m.hidden[string(key)] = struct{}{}
}

func (m *Manager) isHidden(key []byte) bool {
	_, ok := m.hidden[string(key)]
	return ok
}

func (m *Manager) dirty() bool {
	return len(m.buffered) > 0 || len(m.edges) > 0 || len(m.deletes) > 0
}
