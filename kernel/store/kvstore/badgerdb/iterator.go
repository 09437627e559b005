package badgerdb

import (
	"bytes"
	"sync"

	"github.com/dgraph-io/badger"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

var _ kvstore.KVIterator = &Iterator{}

type Iterator struct {
	close  sync.Once
	tx     *badger.Txn
	ownTx  bool
	iter   *badger.Iterator
	start  []byte
	end    []byte
	valid  bool
	key    []byte
	val    []byte
	err    error
}

// newIterator visits [start, end); a nil end is unbounded. A prefix scan is
// the range [prefix, kvstore.PrefixEnd(prefix)).
func newIterator(tx *badger.Txn, ownTx bool, start, end []byte) *Iterator {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 10
	rv := &Iterator{
		tx:    tx,
		ownTx: ownTx,
		iter:  tx.NewIterator(opts),
		start: start,
		end:   end,
	}
	rv.Seek(start)
	return rv
}

func (i *Iterator) load() {
	i.key, i.val = nil, nil
	i.valid = i.err == nil && i.iter.Valid()
	if !i.valid {
		return
	}
	item := i.iter.Item()
	key := item.Key()
	if i.end != nil && bytes.Compare(key, i.end) >= 0 {
		i.valid = false
		return
	}
	i.key = key
	i.val, i.err = item.ValueCopy(i.val[:0])
	if i.err != nil {
		i.valid = false
	}
}

func (i *Iterator) Seek(k []byte) {
	if i == nil {
		return
	}
	if i.start != nil && bytes.Compare(k, i.start) < 0 {
		k = i.start
	}
	if i.end != nil && bytes.Compare(k, i.end) >= 0 {
		i.key, i.val, i.valid = nil, nil, false
		return
	}
	i.iter.Seek(k)
	i.load()
}

func (i *Iterator) Next() {
	if i == nil || !i.valid {
		return
	}
	i.iter.Next()
	i.load()
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
		i.iter.Close()
		if i.ownTx {
			i.tx.Discard()
		}
	})
	return i.err
}
