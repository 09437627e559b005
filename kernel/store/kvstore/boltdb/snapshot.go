package boltdb

import (
	"github.com/boltdb/bolt"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.Snapshot = &Snapshot{}

// Snapshot is a read transaction; its iterators share it and stop working
// once it is closed.
type Snapshot struct {
	tx     *bolt.Tx
	bucket *bolt.Bucket
}

func (r *Snapshot) Get(key []byte) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	v := r.bucket.Get(key)
	if v == nil {
		return nil, nil
	}
	return cloneBytes(v), nil
}

func (r *Snapshot) MultiGet(keys [][]byte) ([][]byte, error) {
	if r == nil {
		return nil, nil
	}
	return kvstore.MultiGet(r, keys)
}

func (r *Snapshot) PrefixIterator(prefix []byte) kvstore.KVIterator {
	if r == nil {
		return nil
	}
	return newIterator(nil, r.bucket, prefix, kvstore.PrefixEnd(prefix))
}

func (r *Snapshot) RangeIterator(start, end []byte) kvstore.KVIterator {
	if r == nil {
		return nil
	}
	return newIterator(nil, r.bucket, start, end)
}

func (r *Snapshot) Close() error {
	if r == nil {
		return nil
	}
	return r.tx.Rollback()
}
