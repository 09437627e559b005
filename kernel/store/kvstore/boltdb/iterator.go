package boltdb

import (
	"bytes"
	"sync"

	"github.com/boltdb/bolt"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.KVIterator = &Iterator{}

// Iterator visits the keys of [start, end) of one bucket; a nil end is
// unbounded. Prefix scans use end = kvstore.PrefixEnd(prefix).
type Iterator struct {
	close  sync.Once
	tx     *bolt.Tx // rolled back on Close, nil when a Snapshot owns it
	cursor *bolt.Cursor
	start  []byte
	end    []byte
	valid  bool
	key    []byte
	val    []byte
	err    error
}

// newIterator takes ownership of owned, which may be nil. A missing bucket
// yields an iterator that fails with ErrBucketNotFound.
func newIterator(owned *bolt.Tx, bucket *bolt.Bucket, start, end []byte) kvstore.KVIterator {
	if bucket == nil {
		if owned != nil {
			_ = owned.Rollback()
		}
		return &kvstore.ErrIterator{Cause: ErrBucketNotFound}
	}
	rv := &Iterator{
		tx:     owned,
		cursor: bucket.Cursor(),
		start:  start,
		end:    end,
	}
	rv.Seek(start)
	return rv
}

func (i *Iterator) load(k, v []byte) {
	i.key, i.val = k, v
	i.valid = k != nil && (i.end == nil || bytes.Compare(k, i.end) < 0)
	if !i.valid {
		i.key, i.val = nil, nil
	}
}

// usable fails the iterator once the transaction under the cursor is gone,
// since bolt cursors panic on a closed transaction.
func (i *Iterator) usable() bool {
	if i.err != nil {
		return false
	}
	if i.cursor.Bucket().Tx().DB() == nil {
		i.err = bolt.ErrTxClosed
		i.load(nil, nil)
		return false
	}
	return true
}

func (i *Iterator) Seek(k []byte) {
	if i == nil || !i.usable() {
		return
	}
	if i.start != nil && bytes.Compare(k, i.start) < 0 {
		k = i.start
	}
	if i.end != nil && bytes.Compare(k, i.end) >= 0 {
		i.load(nil, nil)
		return
	}
	if k == nil {
		i.load(i.cursor.First())
		return
	}
	i.load(i.cursor.Seek(k))
}

func (i *Iterator) Next() {
	if i == nil || !i.valid || !i.usable() {
		return
	}
	i.load(i.cursor.Next())
}

func (i *Iterator) Current() ([]byte, []byte, bool) {
	if i == nil {
		return nil, nil, false
	}
	return i.key, i.val, i.valid
}

func (i *Iterator) Key() []byte {
	if i == nil {
		return nil
	}
	return i.key
}

func (i *Iterator) Value() []byte {
	if i == nil {
		return nil
	}
	return i.val
}

func (i *Iterator) Valid() bool {
	if i == nil {
		return false
	}
	return i.valid
}

func (i *Iterator) Err() error {
	if i == nil {
		return nil
	}
	return i.err
}

func (i *Iterator) Close() error {
	if i == nil {
		return nil
	}
	i.close.Do(func() {
		if i.tx != nil {
			if err := i.tx.Rollback(); err != nil && i.err == nil {
				i.err = err
			}
		}
		i.valid = false
	})
	return i.err
}
