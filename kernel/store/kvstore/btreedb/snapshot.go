package btreedb

import (
	"github.com/google/btree"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.Snapshot = &Snapshot{}

// Snapshot owns a private clone of the tree. Nothing writes to the clone, so
// reads need no locking.
type Snapshot struct {
	keys *btree.BTree
}

func (r *Snapshot) Get(key []byte) ([]byte, error) {
	if r.keys == nil {
		return nil, ErrDatabaseClosed
	}
	return get(r.keys, key), nil
}

func (r *Snapshot) MultiGet(keys [][]byte) ([][]byte, error) {
	return kvstore.MultiGet(r, keys)
}

func (r *Snapshot) PrefixIterator(prefix []byte) kvstore.KVIterator {
	if r.keys == nil {
		return &kvstore.ErrIterator{Cause: ErrDatabaseClosed}
	}
	rv := &Iterator{keys: r.keys, prefix: prefix}
	rv.Seek(prefix)
	return rv
}

func (r *Snapshot) RangeIterator(start, end []byte) kvstore.KVIterator {
	if r.keys == nil {
		return &kvstore.ErrIterator{Cause: ErrDatabaseClosed}
	}
	rv := &Iterator{keys: r.keys, start: start, end: end}
	rv.Seek(start)
	return rv
}

func (r *Snapshot) Close() error {
	r.keys = nil
	return nil
}
