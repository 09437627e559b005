package btreedb

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/test"
)

func open(t *testing.T) kvstore.KVStore {
	return New(&StoreConfig{Degree: 4})
}

func cleanup(t *testing.T, s kvstore.KVStore) {
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBTreeKVCrud(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestKVCrud(t, s)
}

func TestBTreeBatchOrder(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestBatchOrder(t, s)
}

func TestBTreeReaderOwnsGetBytes(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestReaderOwnsGetBytes(t, s)
}

func TestBTreeWriterOwnsBytes(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestWriterOwnsBytes(t, s)
}

func TestBTreePrefixIterator(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestPrefixIterator(t, s)
}

func TestBTreeRangeIterator(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestRangeIterator(t, s)
}

func TestBTreeSnapshotIsolation(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestSnapshotIsolation(t, s)
}

func TestBTreeIteratorCrossesPages(t *testing.T) {
	s := New(nil)
	defer cleanup(t, s)

	batch := s.NewKVBatch()
	total := pageSize*3 + 5
	for i := 0; i < total; i++ {
		batch.Set([]byte(fmt.Sprintf("p%04d", i)), []byte{byte(i)})
	}
	batch.Set([]byte("q"), []byte("outside"))
	require.NoError(t, s.ExecuteBatch(batch))
	assert.Equal(t, total+1, s.Len())

	it := s.PrefixIterator([]byte("p"))
	defer it.Close()
	count := 0
	for ; it.Valid(); it.Next() {
		assert.Equal(t, fmt.Sprintf("p%04d", count), string(it.Key()))
		count++
	}
	assert.Equal(t, total, count)

	it.Seek([]byte(fmt.Sprintf("p%04d", pageSize)))
	require.True(t, it.Valid())
	assert.Equal(t, []byte{byte(pageSize)}, it.Value())
}

func TestBTreeIteratorWhileWriting(t *testing.T) {
	s := New(nil)
	defer cleanup(t, s)
	require.NoError(t, s.Put([]byte("a1"), []byte("v")))

	it := s.PrefixIterator([]byte("a"))
	defer it.Close()
	require.NoError(t, s.Put([]byte("a2"), []byte("v")))
	require.NoError(t, s.Delete([]byte("a1")))

	require.True(t, it.Valid())
	assert.Equal(t, "a1", string(it.Key()))
	it.Next()
	assert.False(t, it.Valid())
}

func TestBTreeClosed(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Close())
	assert.Equal(t, ErrDatabaseClosed, s.Close())
	_, err := s.Get([]byte("a"))
	assert.Equal(t, ErrDatabaseClosed, err)
	it := s.PrefixIterator(nil)
	assert.False(t, it.Valid())
	assert.Equal(t, ErrDatabaseClosed, it.Err())
}

func TestBTreeRegistered(t *testing.T) {
	s, err := kvstore.Build(Name, kvstore.EngineConfig{Degree: 8})
	require.NoError(t, err)
	defer cleanup(t, s)
	require.NoError(t, s.Put([]byte("k"), []byte{}))
	val, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.NotNil(t, val)
	assert.Empty(t, val)
}
