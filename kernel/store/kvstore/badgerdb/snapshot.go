package badgerdb

import (
	"sync"

	"github.com/dgraph-io/badger"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.Snapshot = &Snapshot{}

type Snapshot struct {
	close sync.Once
	tx    *badger.Txn
}

func (r *Snapshot) Get(key []byte) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	item, err := r.tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
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
	// we must not let the iterator discard tx
	return newIterator(r.tx, false, prefix, kvstore.PrefixEnd(prefix))
}

func (r *Snapshot) RangeIterator(start, end []byte) kvstore.KVIterator {
	if r == nil {
		return nil
	}
	return newIterator(r.tx, false, start, end)
}

func (r *Snapshot) Close() error {
	if r == nil {
		return nil
	}
	r.close.Do(func() {
		if r.tx != nil {
			r.tx.Discard()
		}
	})
	return nil
}
