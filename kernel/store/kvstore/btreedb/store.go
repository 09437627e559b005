// Package btreedb is an in-memory kvstore engine on a copy-on-write btree.
// Snapshots are lazy clones of the tree, so readers never block writers.
package btreedb

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

const (
	Name = "btree"

	defaultDegree = 32
)

var (
	ErrDatabaseClosed = errors.New("database closed")

	_ kvstore.KVStore = &Store{}
)

func init() {
	kvstore.Register(Name, func(cfg kvstore.EngineConfig) (kvstore.KVStore, error) {
		return New(&StoreConfig{Degree: cfg.Degree}), nil
	})
}

type StoreConfig struct {
	Degree int
}

type dbItem struct {
	key   []byte
	value []byte
}

func (dbi *dbItem) Less(item btree.Item) bool {
	return bytes.Compare(dbi.key, item.(*dbItem).key) < 0
}

type Store struct {
	mu     sync.RWMutex
	keys   *btree.BTree
	closed bool
}

func New(config *StoreConfig) *Store {
	degree := defaultDegree
	if config != nil && config.Degree > 1 {
		degree = config.Degree
	}
	return &Store{keys: btree.New(degree)}
}

func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrDatabaseClosed
	}
	return get(s.keys, key), nil
}

func get(tree *btree.BTree, key []byte) []byte {
	item := tree.Get(&dbItem{key: key})
	if item == nil {
		return nil
	}
	return append([]byte{}, item.(*dbItem).value...)
}

func (s *Store) Put(key, value []byte) error {
	batch := kvstore.NewBatch()
	batch.Set(key, value)
	return s.ExecuteBatch(batch)
}

func (s *Store) Delete(key []byte) error {
	batch := kvstore.NewBatch()
	batch.Delete(key)
	return s.ExecuteBatch(batch)
}

func (s *Store) MultiGet(keys [][]byte) ([][]byte, error) {
	snap, err := s.GetSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()
	return snap.MultiGet(keys)
}

func (s *Store) PrefixIterator(prefix []byte) kvstore.KVIterator {
	snap, err := s.GetSnapshot()
	if err != nil {
		return &kvstore.ErrIterator{Cause: err}
	}
	return snap.PrefixIterator(prefix)
}

func (s *Store) RangeIterator(start, end []byte) kvstore.KVIterator {
	snap, err := s.GetSnapshot()
	if err != nil {
		return &kvstore.ErrIterator{Cause: err}
	}
	return snap.RangeIterator(start, end)
}

func (s *Store) NewKVBatch() kvstore.KVBatch {
	return kvstore.NewBatch()
}

// ExecuteBatch applies the batch under the write lock. Batch operations
// already own copies of their bytes.
func (s *Store) ExecuteBatch(batch kvstore.KVBatch) error {
	if batch == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrDatabaseClosed
	}
	for _, op := range batch.Operations() {
		if op.IsDelete() {
			s.keys.Delete(&dbItem{key: op.Key()})
			continue
		}
		s.keys.ReplaceOrInsert(&dbItem{key: op.Key(), value: op.Value()})
	}
	return nil
}

func (s *Store) GetSnapshot() (kvstore.Snapshot, error) {
	// Clone mutates the copy-on-write context of the source tree.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrDatabaseClosed
	}
	return &Snapshot{keys: s.keys.Clone()}, nil
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0
	}
	return s.keys.Len()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrDatabaseClosed
	}
	s.closed = true
	s.keys = nil
	return nil
}
