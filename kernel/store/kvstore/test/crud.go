// Package test holds the conformance suite every kvstore backend runs.
package test

import (
	"reflect"
	"testing"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// basic crud tests

func CommonTestKVCrud(t *testing.T, s kvstore.KVStore) {
	batch := s.NewKVBatch()
	batch.Set([]byte("a"), []byte("val-a"))
	batch.Set([]byte("z"), []byte("val-z"))
	batch.Delete([]byte("z"))
	err := s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	batch.Reset()

	batch.Set([]byte("b"), []byte("val-b"))
	batch.Set([]byte("c"), []byte("val-c"))
	batch.Set([]byte("d"), []byte("val-d"))
	batch.Set([]byte("e"), []byte("val-e"))
	batch.Set([]byte("f"), []byte("val-f"))
	batch.Set([]byte("g"), []byte("val-g"))
	batch.Set([]byte("h"), []byte("val-h"))
	batch.Set([]byte("i"), []byte("val-i"))
	batch.Set([]byte("j"), []byte("val-j"))

	err = s.ExecuteBatch(batch)
	if err != nil {
		t.Fatal(err)
	}

	val, err := s.Get([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if string(val) != "val-a" {
		t.Fatalf("expected value val-a, got %s", val)
	}
	val, err = s.Get([]byte("z"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Fatalf("expected deleted key z to be missing, got %s", val)
	}

	if err = s.Put([]byte("k"), []byte("val-k")); err != nil {
		t.Fatal(err)
	}
	if err = s.Delete([]byte("b")); err != nil {
		t.Fatal(err)
	}

	vals, err := s.MultiGet([][]byte{[]byte("b"), []byte("c"), []byte("k")})
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]byte{nil, []byte("val-c"), []byte("val-k")}
	if !reflect.DeepEqual(vals, expected) {
		t.Fatalf("expected %q, got %q", expected, vals)
	}

	count := 0
	it := s.RangeIterator([]byte("c"), []byte("h"))
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()
	for ; it.Valid(); it.Next() {
		count++
		key, value, _ := it.Current()
		if count == 1 {
			if string(key) != "c" {
				t.Fatalf("expected key c, got %s", key)
			}
			if string(value) != "val-c" {
				t.Fatalf("expected value val-c, got %s", value)
			}
		}
	}
	if err := it.Err(); err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Fatalf(`expected 5 keys in ["c","h"), got %d`, count)
	}
}

// CommonTestBatchOrder checks that a delete followed by a set of the same key
// in one batch leaves the key set, and the reverse leaves it missing.
func CommonTestBatchOrder(t *testing.T, s kvstore.KVStore) {
	batch := s.NewKVBatch()
	batch.Set([]byte("x"), []byte("old"))
	batch.Set([]byte("y"), []byte("old"))
	if err := s.ExecuteBatch(batch); err != nil {
		t.Fatal(err)
	}

	batch = s.NewKVBatch()
	batch.Delete([]byte("x"))
	batch.Set([]byte("x"), []byte("new"))
	batch.Set([]byte("y"), []byte("new"))
	batch.Delete([]byte("y"))
	if err := s.ExecuteBatch(batch); err != nil {
		t.Fatal(err)
	}

	val, err := s.Get([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if string(val) != "new" {
		t.Fatalf("expected x=new, got %q", val)
	}
	val, err = s.Get([]byte("y"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Fatalf("expected y missing, got %q", val)
	}
}

func CommonTestReaderOwnsGetBytes(t *testing.T, s kvstore.KVStore) {
	originalKey := []byte("key")
	originalVal := []byte("val")

	if err := s.Put(originalKey, originalVal); err != nil {
		t.Fatal(err)
	}

	returnedVal, err := s.Get(originalKey)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(returnedVal, originalVal) {
		t.Fatalf("expected value: %v for '%s', got %v", originalVal, originalKey, returnedVal)
	}

	// mutate the returned value
	for i := range returnedVal {
		returnedVal[i] = '1'
	}

	returnedVal2, err := s.Get(originalKey)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(returnedVal2, originalVal) {
		t.Fatalf("expected value: %v for '%s', got %v", originalVal, originalKey, returnedVal2)
	}
}

func CommonTestWriterOwnsBytes(t *testing.T, s kvstore.KVStore) {
	keyBuffer := []byte("key")
	valBuffer := []byte("val")

	batch := s.NewKVBatch()
	batch.Set(keyBuffer, valBuffer)

	// mutate the buffers before the batch is executed
	keyBuffer[0] = 'z'
	valBuffer[0] = 'z'

	if err := s.ExecuteBatch(batch); err != nil {
		t.Fatal(err)
	}

	val, err := s.Get([]byte("key"))
	if err != nil {
		t.Fatal(err)
	}
	if string(val) != "val" {
		t.Fatalf("expected val, got %q", val)
	}
	val, err = s.Get([]byte("zey"))
	if err != nil {
		t.Fatal(err)
	}
	if val != nil {
		t.Fatalf("expected zey missing, got %q", val)
	}
}
