package graph

import (
	"bytes"

	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
)

const edgeSetDegree = 8

// Adjacency lists the edges of one vertex in one direction.
type Adjacency interface {
	Direction() schema.Direction

	// Edges iterates the edges of a category, stored ones first, in key
	// order. Each call starts a new scan.
	Edges(category schema.Edge) EdgeIterator

	// EdgesOfType narrows Edges to neighbours of the given type. For role
	// players the filter is the role type instead.
	EdgesOfType(category schema.Edge, neighbourType iid.Vertex) EdgeIterator

	// Edge returns the first edge of the category to neighbour, or nil.
	Edge(category schema.Edge, neighbour iid.Vertex) (*Edge, error)

	buffered() *edgeSet
}

type edgeItem struct {
	key  []byte
	edge *Edge
}

func (i *edgeItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(*edgeItem).key) < 0
}

// edgeSet holds buffered edges ordered by the IID rooted at the owner.
type edgeSet struct {
	tree *btree.BTree
}

func newEdgeSet() *edgeSet {
	return &edgeSet{tree: btree.New(edgeSetDegree)}
}

func (s *edgeSet) put(key *iid.Edge, e *Edge) {
	s.tree.ReplaceOrInsert(&edgeItem{key: key.Bytes(), edge: e})
}

func (s *edgeSet) get(key []byte) *Edge {
	item := s.tree.Get(&edgeItem{key: key})
	if item == nil {
		return nil
	}
	return item.(*edgeItem).edge
}

func (s *edgeSet) remove(key *iid.Edge) {
	s.tree.Delete(&edgeItem{key: key.Bytes()})
}

func (s *edgeSet) prefixed(prefix []byte) []*Edge {
	var edges []*Edge
	s.tree.AscendGreaterOrEqual(&edgeItem{key: prefix}, func(item btree.Item) bool {
		ei := item.(*edgeItem)
		if !bytes.HasPrefix(ei.key, prefix) {
			return false
		}
		edges = append(edges, ei.edge)
		return true
	})
	return edges
}

func (s *edgeSet) all() []*Edge {
	edges := make([]*Edge, 0, s.tree.Len())
	s.tree.Ascend(func(item btree.Item) bool {
		edges = append(edges, item.(*edgeItem).edge)
		return true
	})
	return edges
}

func (s *edgeSet) Len() int {
	return s.tree.Len()
}

// edgePrefix is owner‖infix code, extended by the neighbour type (or the
// role type of role players) when one is given.
func edgePrefix(owner iid.Vertex, dir schema.Direction, category schema.Edge, neighbourType iid.Vertex) ([]byte, error) {
	if !category.Valid() || category == schema.Isa {
		return nil, errors.Wrapf(ErrIllegalOperation, "scan of %v edges", category)
	}
	prefix := make([]byte, 0, len(owner)+1+iid.ThingLen)
	prefix = append(prefix, owner...)
	prefix = append(prefix, category.Code(dir))
	if neighbourType == nil {
		return prefix, nil
	}
	if !neighbourType.IsType() || !neighbourType.Valid() {
		return nil, errors.Wrapf(ErrIllegalOperation, "neighbour type %v", neighbourType)
	}
	if category == schema.RolePlayer {
		return append(prefix, neighbourType...), nil
	}
	if !category.IsThing() {
		return nil, errors.Wrapf(ErrIllegalOperation, "%v edges have no neighbour type", category)
	}
	instance, ok := neighbourType.Prefix().Instance()
	if !ok {
		return nil, errors.Wrapf(ErrIllegalOperation, "%v has no instances", neighbourType)
	}
	prefix = append(prefix, byte(instance))
	return append(prefix, neighbourType...), nil
}

// lookupPrefix narrows the scan to neighbour where the key layout allows it.
func lookupPrefix(owner iid.Vertex, dir schema.Direction, category schema.Edge, neighbour iid.Vertex) ([]byte, error) {
	prefix, err := edgePrefix(owner, dir, category, nil)
	if err != nil {
		return nil, err
	}
	if category == schema.RolePlayer {
		return prefix, nil
	}
	return append(prefix, neighbour...), nil
}

func firstTo(it EdgeIterator, dir schema.Direction, neighbour iid.Vertex) (*Edge, error) {
	defer it.Close()
	for it.Next() {
		if e := it.Edge(); e.neighbour(dir).IID().Equal(neighbour) {
			return e, nil
		}
	}
	return nil, it.Err()
}

type bufferedAdjacency struct {
	owner Vertex
	dir   schema.Direction
	set   *edgeSet
}

func newBufferedAdjacency(owner Vertex, dir schema.Direction) *bufferedAdjacency {
	return &bufferedAdjacency{owner: owner, dir: dir, set: newEdgeSet()}
}

func (a *bufferedAdjacency) Direction() schema.Direction { return a.dir }
func (a *bufferedAdjacency) buffered() *edgeSet          { return a.set }

func (a *bufferedAdjacency) Edges(category schema.Edge) EdgeIterator {
	return a.EdgesOfType(category, nil)
}

func (a *bufferedAdjacency) EdgesOfType(category schema.Edge, neighbourType iid.Vertex) EdgeIterator {
	prefix, err := edgePrefix(a.owner.IID(), a.dir, category, neighbourType)
	if err != nil {
		return &errIterator{err: err}
	}
	return &sliceIterator{edges: a.set.prefixed(prefix)}
}

func (a *bufferedAdjacency) Edge(category schema.Edge, neighbour iid.Vertex) (*Edge, error) {
	prefix, err := lookupPrefix(a.owner.IID(), a.dir, category, neighbour)
	if err != nil {
		return nil, err
	}
	return firstTo(&sliceIterator{edges: a.set.prefixed(prefix)}, a.dir, neighbour)
}

// persistedAdjacency scans the store under the owner's prefix, then lists the
// edges buffered on the owner during this transaction.
type persistedAdjacency struct {
	mgr   *Manager
	owner Vertex
	dir   schema.Direction
	set   *edgeSet
}

func newPersistedAdjacency(mgr *Manager, owner Vertex, dir schema.Direction) *persistedAdjacency {
	return &persistedAdjacency{mgr: mgr, owner: owner, dir: dir, set: newEdgeSet()}
}

func (a *persistedAdjacency) Direction() schema.Direction { return a.dir }
func (a *persistedAdjacency) buffered() *edgeSet          { return a.set }

func (a *persistedAdjacency) Edges(category schema.Edge) EdgeIterator {
	return a.EdgesOfType(category, nil)
}

func (a *persistedAdjacency) EdgesOfType(category schema.Edge, neighbourType iid.Vertex) EdgeIterator {
	prefix, err := edgePrefix(a.owner.IID(), a.dir, category, neighbourType)
	if err != nil {
		return &errIterator{err: err}
	}
	return a.scan(prefix)
}

func (a *persistedAdjacency) Edge(category schema.Edge, neighbour iid.Vertex) (*Edge, error) {
	prefix, err := lookupPrefix(a.owner.IID(), a.dir, category, neighbour)
	if err != nil {
		return nil, err
	}
	return firstTo(a.scan(prefix), a.dir, neighbour)
}

func (a *persistedAdjacency) scan(prefix []byte) EdgeIterator {
	if a.mgr.closed {
		return &errIterator{err: ErrTxClosed}
	}
	return &scanIterator{
		mgr:    a.mgr,
		owner:  a.owner,
		dir:    a.dir,
		prefix: prefix,
		it:     a.mgr.store.PrefixIterator(prefix),
		set:    a.set,
	}
}
