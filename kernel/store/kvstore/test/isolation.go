package test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

func CommonTestSnapshotIsolation(t *testing.T, s kvstore.KVStore) {
	hackSize := 1000
	batch := s.NewKVBatch()
	for i := 0; i < hackSize; i++ {
		k := fmt.Sprintf("x%d", i)
		batch.Set([]byte(k), []byte("filler"))
	}
	err := s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}
	// **************************************************

	batch = s.NewKVBatch()
	batch.Set([]byte("a"), []byte("val-a"))
	err = s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	// create an isolated reader
	reader, err := s.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	// verify that we see the value already inserted
	val, err := reader.Get([]byte("a"))
	if err != nil {
		t.Error(err)
	}
	if !reflect.DeepEqual(val, []byte("val-a")) {
		t.Errorf("expected val-a, got %q", val)
	}

	// verify that an iterator sees it
	if keys := collectKeys(t, reader.RangeIterator([]byte{0}, []byte{'x'})); len(keys) != 1 {
		t.Errorf("expected iterator to see 1, saw %d", len(keys))
	}

	defer func() {
		if err := reader.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	batch = s.NewKVBatch()
	batch.Set([]byte("b"), []byte("val-b"))
	err = s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	// ensure that a newer reader sees it
	newReader, err := s.GetSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := newReader.Close(); err != nil {
			t.Fatal(err)
		}
	}()
	val, err = newReader.Get([]byte("b"))
	if err != nil {
		t.Error(err)
	}
	if !reflect.DeepEqual(val, []byte("val-b")) {
		t.Errorf("expected val-b, got %q", val)
	}
	if keys := collectKeys(t, newReader.PrefixIterator(nil)); len(keys) != hackSize+2 {
		t.Errorf("expected iterator to see %d, saw %d", hackSize+2, len(keys))
	}

	// but that the isolated reader does not
	val, err = reader.Get([]byte("b"))
	if err != nil {
		t.Error(err)
	}
	if val != nil {
		t.Errorf("expected nil, got %v", val)
	}

	// and ensure that the iterator on the isolated reader also does not
	if keys := collectKeys(t, reader.RangeIterator([]byte{0}, []byte{'x'})); len(keys) != 1 {
		t.Errorf("expected iterator to see 1, saw %d", len(keys))
	}
}
