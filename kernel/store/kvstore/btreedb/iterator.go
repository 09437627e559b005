package btreedb

import (
	"bytes"

	"github.com/google/btree"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

const pageSize = 64

var _ kvstore.KVIterator = &Iterator{}

// Iterator pulls items from an immutable tree a page at a time, since btree
// only offers callback traversal.
type Iterator struct {
	keys   *btree.BTree
	prefix []byte
	start  []byte
	end    []byte

	page []*dbItem
	pos  int
	// done is set once the tree has no items past the current page.
	done bool
}

func (i *Iterator) inBounds(key []byte) bool {
	if i.prefix != nil && !bytes.HasPrefix(key, i.prefix) {
		return false
	}
	if i.end != nil && bytes.Compare(key, i.end) >= 0 {
		return false
	}
	return true
}

// fill loads up to pageSize in-bound items with key >= pivot, skipping the
// pivot itself when exclusive is set.
func (i *Iterator) fill(pivot []byte, exclusive bool) {
	i.page = i.page[:0]
	i.pos = 0
	i.done = true
	visit := func(item btree.Item) bool {
		dbi := item.(*dbItem)
		if exclusive && bytes.Equal(dbi.key, pivot) {
			return true
		}
		if !i.inBounds(dbi.key) {
			return false
		}
		if len(i.page) == pageSize {
			i.done = false
			return false
		}
		i.page = append(i.page, dbi)
		return true
	}
	if pivot == nil {
		i.keys.Ascend(visit)
		return
	}
	i.keys.AscendGreaterOrEqual(&dbItem{key: pivot}, visit)
}

func (i *Iterator) Seek(key []byte) {
	if i.start != nil && bytes.Compare(key, i.start) < 0 {
		key = i.start
	}
	if i.prefix != nil && !bytes.HasPrefix(key, i.prefix) {
		if bytes.Compare(key, i.prefix) < 0 {
			key = i.prefix
		} else {
			i.page = i.page[:0]
			i.pos = 0
			i.done = true
			return
		}
	}
	i.fill(key, false)
}

func (i *Iterator) Next() {
	if !i.Valid() {
		return
	}
	i.pos++
	if i.pos < len(i.page) || i.done {
		return
	}
	last := i.page[len(i.page)-1].key
	i.fill(last, true)
}

func (i *Iterator) Current() ([]byte, []byte, bool) {
	if !i.Valid() {
		return nil, nil, false
	}
	item := i.page[i.pos]
	return item.key, item.value, true
}

func (i *Iterator) Key() []byte {
	k, _, _ := i.Current()
	return k
}

func (i *Iterator) Value() []byte {
	_, v, _ := i.Current()
	return v
}

func (i *Iterator) Valid() bool {
	return i.pos < len(i.page)
}

func (i *Iterator) Err() error {
	return nil
}

func (i *Iterator) Close() error {
	i.page = nil
	i.keys = nil
	return nil
}
