package graph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/badgerdb"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/boltdb"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/btreedb"
)

// recordingStore keeps the operations of every executed batch.
type recordingStore struct {
	kvstore.KVStore
	batches [][]kvstore.Operation
}

func (s *recordingStore) ExecuteBatch(batch kvstore.KVBatch) error {
	s.batches = append(s.batches, append([]kvstore.Operation(nil), batch.Operations()...))
	return s.KVStore.ExecuteBatch(batch)
}

func (s *recordingStore) last() []kvstore.Operation {
	if len(s.batches) == 0 {
		return nil
	}
	return s.batches[len(s.batches)-1]
}

func newTestDB(t *testing.T) (*Database, *recordingStore) {
	store := &recordingStore{KVStore: btreedb.New(nil)}
	t.Cleanup(func() { store.Close() })
	db, err := Open(store, Options{IDStep: 10})
	require.NoError(t, err)
	return db, store
}

// backends opens one store of every engine.
func backends(t *testing.T) map[string]kvstore.KVStore {
	dir := t.TempDir()
	bolt, err := boltdb.New(&boltdb.StoreConfig{Path: filepath.Join(dir, "bolt.db"), NoSync: true})
	require.NoError(t, err)
	badger, err := badgerdb.New(&badgerdb.StoreConfig{Path: filepath.Join(dir, "badger")})
	require.NoError(t, err)
	stores := map[string]kvstore.KVStore{
		"btree":  btreedb.New(nil),
		"bolt":   bolt,
		"badger": badger,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func mustType(t *testing.T, m *Manager, prefix schema.Prefix, label string) Vertex {
	v, err := m.CreateTypeVertex(prefix, label)
	require.NoError(t, err)
	return v
}

func mustThing(t *testing.T, m *Manager, typ Vertex) Vertex {
	v, err := m.CreateThingVertex(typ.IID())
	require.NoError(t, err)
	return v
}

func mustAttribute(t *testing.T, m *Manager, typ Vertex, value string) Vertex {
	v, err := m.PutAttribute(typ.IID(), []byte(value))
	require.NoError(t, err)
	return v
}

func mustEdge(t *testing.T, m *Manager, category schema.Edge, from, to Vertex, opts ...EdgeOption) *Edge {
	e, err := m.PutEdge(category, from, to, opts...)
	require.NoError(t, err)
	return e
}

func mustGet(t *testing.T, m *Manager, id iid.Vertex) Vertex {
	v, err := m.GetVertex(id)
	require.NoError(t, err)
	require.NotNil(t, v, "vertex %v", id)
	return v
}

func collect(t *testing.T, it EdgeIterator) []*Edge {
	defer it.Close()
	var edges []*Edge
	for it.Next() {
		edges = append(edges, it.Edge())
	}
	require.NoError(t, it.Err())
	return edges
}

func storedKeys(t *testing.T, s kvstore.KVStore, prefix []byte) [][]byte {
	it := s.PrefixIterator(prefix)
	defer it.Close()
	var keys [][]byte
	for ; it.Valid(); it.Next() {
		keys = append(keys, append([]byte(nil), it.Key()...))
	}
	require.NoError(t, it.Err())
	return keys
}

func opKeys(ops []kvstore.Operation) (sets, deletes [][]byte) {
	for _, op := range ops {
		if op.IsDelete() {
			deletes = append(deletes, op.Key())
		} else {
			sets = append(sets, op.Key())
		}
	}
	return
}
