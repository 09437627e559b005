package graph

import (
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// EdgeIterator is a forward-only cursor:
//
//	it := v.Outs().Edges(schema.Sub)
//	defer it.Close()
//	for it.Next() {
//		e := it.Edge()
//	}
//	if err := it.Err(); err != nil {
//	}
type EdgeIterator interface {
	Next() bool
	Edge() *Edge
	Err() error
	Close() error
}

type sliceIterator struct {
	edges []*Edge
	cur   *Edge
}

func (i *sliceIterator) Next() bool {
	for len(i.edges) > 0 {
		i.cur, i.edges = i.edges[0], i.edges[1:]
		if !i.cur.deleted {
			return true
		}
	}
	i.cur = nil
	return false
}

func (i *sliceIterator) Edge() *Edge  { return i.cur }
func (i *sliceIterator) Err() error   { return nil }
func (i *sliceIterator) Close() error { i.edges = nil; return nil }

type errIterator struct {
	err error
}

func (i *errIterator) Next() bool   { return false }
func (i *errIterator) Edge() *Edge  { return nil }
func (i *errIterator) Err() error   { return i.err }
func (i *errIterator) Close() error { return nil }

// scanIterator decodes stored keys under prefix, resolving the neighbour of
// each one as it goes, then moves on to the buffered edges of the owner.
type scanIterator struct {
	mgr    *Manager
	owner  Vertex
	dir    schema.Direction
	prefix []byte
	it     kvstore.KVIterator
	set    *edgeSet
	rest   *sliceIterator
	cur    *Edge
	err    error
}

func (i *scanIterator) Next() bool {
	i.cur = nil
	if i.err != nil {
		return false
	}
	for i.it != nil {
		if !i.it.Valid() {
			if i.fail(i.it.Err()); i.err != nil {
				return false
			}
			break
		}
		key, err := iid.ParseEdge(i.it.Key())
		i.it.Next()
		if err != nil {
			i.fail(errors.Wrapf(err, "scan %x", i.prefix))
			return false
		}
		if i.mgr.isHidden(key.Bytes()) {
			continue
		}
		neighbour, err := i.mgr.resolve(key.End())
		if err != nil {
			i.fail(err)
			return false
		}
		if i.dir == schema.Out {
			i.cur = newPersistedEdge(i.mgr, key, i.owner, neighbour)
		} else {
			i.cur = newPersistedEdge(i.mgr, key, neighbour, i.owner)
		}
		return true
	}
	if i.rest == nil {
		i.rest = &sliceIterator{edges: i.set.prefixed(i.prefix)}
	}
	if i.rest.Next() {
		i.cur = i.rest.Edge()
		return true
	}
	return false
}

func (i *scanIterator) fail(err error) {
	i.err = err
	i.closeScan()
}

func (i *scanIterator) closeScan() {
	if i.it != nil {
		if err := i.it.Close(); err != nil && i.err == nil {
			i.err = err
		}
		i.it = nil
	}
}

func (i *scanIterator) Edge() *Edge { return i.cur }
func (i *scanIterator) Err() error  { return i.err }

func (i *scanIterator) Close() error {
	i.closeScan()
	if i.rest != nil {
		i.rest.Close()
	}
	return i.err
}
