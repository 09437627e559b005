package badgerdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/test"
)

func open(t *testing.T) kvstore.KVStore {
	rv, err := New(&StoreConfig{
		Path: filepath.Join(t.TempDir(), "badger"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return rv
}

func cleanup(t *testing.T, s kvstore.KVStore) {
	err := s.Close()
	if err != nil {
		t.Fatal(err)
	}
}

func TestBadgerDBKVCrud(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestKVCrud(t, s)
}

func TestBadgerDBBatchOrder(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestBatchOrder(t, s)
}

func TestBadgerDBReaderOwnsGetBytes(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestReaderOwnsGetBytes(t, s)
}

func TestBadgerDBWriterOwnsBytes(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestWriterOwnsBytes(t, s)
}

func TestBadgerDBPrefixIterator(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestPrefixIterator(t, s)
}

func TestBadgerDBRangeIterator(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestRangeIterator(t, s)
}

func TestBadgerDBSnapshotIsolation(t *testing.T) {
	s := open(t)
	defer cleanup(t, s)
	test.CommonTestSnapshotIsolation(t, s)
}

func TestBadgerDBRegistered(t *testing.T) {
	s, err := kvstore.Build(Name, kvstore.EngineConfig{Path: filepath.Join(t.TempDir(), "reg")})
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup(t, s)

	if err := s.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	val, err := s.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if string(val) != "v" {
		t.Fatalf("expected v, got %q", val)
	}
}

func TestBadgerDBMissingPath(t *testing.T) {
	if _, err := New(&StoreConfig{}); err == nil {
		t.Fatal("expected error without path")
	}
	if _, err := New(nil); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestBadgerDBBatchTooBigWritesNothing(t *testing.T) {
	rv, err := New(&StoreConfig{
		Path:         filepath.Join(t.TempDir(), "badger"),
		MaxTableSize: 1 << 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup(t, rv)

	batch := rv.NewKVBatch()
	for i := 0; i < 10000; i++ {
		batch.Set([]byte(fmt.Sprintf("key-%08d", i)), []byte("value-00"))
	}
	err = rv.ExecuteBatch(batch)
	if !errors.Is(err, badger.ErrTxnTooBig) {
		t.Fatalf("expected ErrTxnTooBig, got %v", err)
	}

	for _, key := range []string{"key-00000000", "key-00009999"} {
		val, err := rv.Get([]byte(key))
		if err != nil {
			t.Fatal(err)
		}
		if val != nil {
			t.Fatalf("%s written by a failed batch", key)
		}
	}
	it := rv.PrefixIterator([]byte("key-"))
	defer it.Close()
	if it.Valid() {
		t.Fatalf("failed batch left %q", it.Key())
	}
}
