package test

import (
	"reflect"
	"testing"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// tests around the correct behavior of iterators

type testRow struct {
	key []byte
	val []byte
}

func batchWriteRows(s kvstore.KVStore, rows []testRow) error {
	batch := s.NewKVBatch()
	for _, row := range rows {
		batch.Set(row.key, row.val)
	}
	return s.ExecuteBatch(batch)
}

func collectKeys(t *testing.T, it kvstore.KVIterator) [][]byte {
	defer func() {
		if err := it.Close(); err != nil {
			t.Fatal(err)
		}
	}()
	keys := make([][]byte, 0)
	for ; it.Valid(); it.Next() {
		k := it.Key()
		copyk := make([]byte, len(k))
		copy(copyk, k)
		keys = append(keys, copyk)
	}
	if err := it.Err(); err != nil {
		t.Fatal(err)
	}
	return keys
}

func CommonTestPrefixIterator(t *testing.T, s kvstore.KVStore) {
	data := []testRow{
		{[]byte("apple"), []byte("val")},
		{[]byte("cat1"), []byte("val")},
		{[]byte("cat2"), []byte("val")},
		{[]byte("cat3"), []byte("val")},
		{[]byte("dog1"), []byte("val")},
		{[]byte("dog2"), []byte("val")},
		{[]byte("dog4"), []byte("val")},
		{[]byte("elephant"), []byte("val")},
		{[]byte{'d', 'o', 'g', 0xff}, []byte("val")},
		{[]byte{'d', 'o', 'h'}, []byte("val")},
	}

	expectedCats := [][]byte{
		[]byte("cat1"),
		[]byte("cat2"),
		[]byte("cat3"),
	}

	expectedDogs := [][]byte{
		[]byte("dog1"),
		[]byte("dog2"),
		[]byte("dog4"),
		{'d', 'o', 'g', 0xff},
	}

	if err := batchWriteRows(s, data); err != nil {
		t.Fatal(err)
	}

	cats := collectKeys(t, s.PrefixIterator([]byte("cat")))
	if !reflect.DeepEqual(cats, expectedCats) {
		t.Fatalf("expected cats %q, got %q", expectedCats, cats)
	}

	dogs := collectKeys(t, s.PrefixIterator([]byte("dog")))
	if !reflect.DeepEqual(dogs, expectedDogs) {
		t.Fatalf("expected dogs %q, got %q", expectedDogs, dogs)
	}

	none := collectKeys(t, s.PrefixIterator([]byte("zebra")))
	if len(none) != 0 {
		t.Fatalf("expected no zebras, got %q", none)
	}

	// scanning twice yields the same sequence
	again := collectKeys(t, s.PrefixIterator([]byte("dog")))
	if !reflect.DeepEqual(again, dogs) {
		t.Fatalf("expected restartable scan %q, got %q", dogs, again)
	}

	// seek inside the prefix, then outside of it
	it := s.PrefixIterator([]byte("dog"))
	it.Seek([]byte("dog3"))
	if key, _, valid := it.Current(); !valid || string(key) != "dog4" {
		t.Fatalf("expected seek to dog4, got %q valid %v", key, valid)
	}
	it.Seek([]byte("e"))
	if it.Valid() {
		t.Fatalf("expected invalid iterator after seeking past prefix, got %q", it.Key())
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
}

func CommonTestRangeIterator(t *testing.T, s kvstore.KVStore) {
	data := []testRow{
		{[]byte("a1"), []byte("val")},
		{[]byte("b1"), []byte("val")},
		{[]byte("b2"), []byte("val")},
		{[]byte("b3"), []byte("val")},
		{[]byte("c1"), []byte("val")},
		{[]byte("c2"), []byte("val")},
		{[]byte("c4"), []byte("val")},
		{[]byte("d1"), []byte("val")},
	}

	if err := batchWriteRows(s, data); err != nil {
		t.Fatal(err)
	}

	all := collectKeys(t, s.RangeIterator(nil, nil))
	if len(all) != len(data) {
		t.Fatalf("expected %d keys, got %q", len(data), all)
	}
	for i, row := range data {
		if !reflect.DeepEqual(all[i], row.key) {
			t.Fatalf("expected key %q at %d, got %q", row.key, i, all[i])
		}
	}

	bToC := collectKeys(t, s.RangeIterator([]byte("b"), []byte("c")))
	expectedBToC := [][]byte{[]byte("b1"), []byte("b2"), []byte("b3")}
	if !reflect.DeepEqual(bToC, expectedBToC) {
		t.Fatalf("expected %q, got %q", expectedBToC, bToC)
	}

	cToEnd := collectKeys(t, s.RangeIterator([]byte("c"), nil))
	expectedCToEnd := [][]byte{[]byte("c1"), []byte("c2"), []byte("c4"), []byte("d1")}
	if !reflect.DeepEqual(cToEnd, expectedCToEnd) {
		t.Fatalf("expected %q, got %q", expectedCToEnd, cToEnd)
	}

	it := s.RangeIterator([]byte("c"), []byte("d"))
	it.Seek([]byte("c3"))
	cToDSeek3 := collectKeys(t, it)
	expectedCToDSeek3 := [][]byte{[]byte("c4")}
	if !reflect.DeepEqual(cToDSeek3, expectedCToDSeek3) {
		t.Fatalf("expected %q, got %q", expectedCToDSeek3, cToDSeek3)
	}
}
