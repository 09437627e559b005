package graph

import (
	"bytes"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/btreedb"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/mock"
)

func indexOf(keys [][]byte, key []byte) int {
	for i, k := range keys {
		if bytes.Equal(k, key) {
			return i
		}
	}
	return -1
}

func TestCommitOrder(t *testing.T) {
	db, store := newTestDB(t)
	m := db.Begin()
	old := mustType(t, m, schema.EntityType, "old")
	require.NoError(t, m.Commit())

	m = db.Begin()
	require.NoError(t, mustGet(t, m, old.IID()).Delete())
	person := mustType(t, m, schema.EntityType, "person")
	alice := mustThing(t, m, person)
	bob := mustThing(t, m, person)
	friendship := mustType(t, m, schema.RelationType, "friendship")
	friend := mustType(t, m, schema.RoleType, "friend")
	rel := mustThing(t, m, friendship)
	e := mustEdge(t, m, schema.RolePlayer, rel, alice, WithRoleType(friend.IID()))
	mustEdge(t, m, schema.RolePlayer, rel, bob, WithRoleType(friend.IID()))
	sub := mustEdge(t, m, schema.Sub, friendship, person)
	require.NoError(t, m.Commit())

	sets, deletes := opKeys(store.last())
	first := len(deletes)
	for i, op := range store.last() {
		if !op.IsDelete() {
			first = i
			break
		}
	}
	assert.Equal(t, len(deletes), first, "deletes precede writes")
	assert.Len(t, deletes, 2)

	pos := func(key []byte) int {
		i := indexOf(sets, key)
		require.True(t, i >= 0, "missing %x", key)
		return i
	}
	lastType := pos(friend.IID())
	assert.True(t, pos(person.IID()) < lastType)
	for _, thing := range []Vertex{alice, bob, rel} {
		assert.True(t, pos(thing.IID()) > lastType)
	}
	for _, key := range [][]byte{e.OutIID().Bytes(), e.InIID().Bytes()} {
		assert.True(t, pos(key) > pos(rel.IID()))
		assert.True(t, pos(key) > pos(alice.IID()))
	}
	assert.True(t, pos(sub.OutIID().Bytes()) > pos(friendship.IID()))
	assert.True(t, pos(sub.InIID().Bytes()) > pos(person.IID()))

	seen := make(map[string]int)
	for _, key := range sets {
		seen[string(key)]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "written twice: %x", key)
	}
}

func TestStorageFailurePropagates(t *testing.T) {
	mockCtl := gomock.NewController(t)
	defer mockCtl.Finish()
	store := mock.NewMockKVStore(mockCtl)
	boom := errors.New("disk gone")

	store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().NewKVBatch().Return(kvstore.NewBatch())
	store.EXPECT().ExecuteBatch(gomock.Any()).Return(boom)

	db, err := Open(store, Options{})
	require.NoError(t, err)
	m := db.Begin()
	mustType(t, m, schema.EntityType, "person")

	failed := testutil.ToFloat64(commitsTotal.WithLabelValues("error"))
	assert.Equal(t, boom, m.Commit())
	assert.True(t, m.Closed())
	assert.Equal(t, failed+1, testutil.ToFloat64(commitsTotal.WithLabelValues("error")))
}

func TestReadFailurePropagates(t *testing.T) {
	mockCtl := gomock.NewController(t)
	defer mockCtl.Finish()
	store := mock.NewMockKVStore(mockCtl)
	boom := errors.New("read failed")
	store.EXPECT().Get(gomock.Any()).Return(nil, boom).AnyTimes()
	store.EXPECT().PrefixIterator(gomock.Any()).Return(&kvstore.ErrIterator{Cause: boom})

	db, err := Open(store, Options{})
	require.NoError(t, err)
	m := db.Begin()

	_, err = m.GetVertex(iid.NewType(schema.EntityType, 1))
	assert.Equal(t, boom, err)
	_, err = m.GetTypeVertex("person")
	assert.Equal(t, boom, err)
	_, err = m.CreateTypeVertex(schema.EntityType, "person")
	assert.Equal(t, boom, err)

	pv := newPersistedVertex(m, iid.NewType(schema.EntityType, 1), []byte("person"))
	it := pv.Outs().Edges(schema.Sub)
	assert.False(t, it.Next())
	assert.Equal(t, boom, it.Err())
}

func TestCommitMetrics(t *testing.T) {
	db, _ := newTestDB(t)
	ok := testutil.ToFloat64(commitsTotal.WithLabelValues("ok"))
	vertices := testutil.ToFloat64(committedVertices)
	edges := testutil.ToFloat64(committedEdges)

	m := db.Begin()
	a := mustType(t, m, schema.EntityType, "a")
	b := mustType(t, m, schema.EntityType, "b")
	mustEdge(t, m, schema.Sub, a, b)
	mustEdge(t, m, schema.Sub, b, a, Inferred())
	require.NoError(t, m.Commit())

	assert.Equal(t, ok+1, testutil.ToFloat64(commitsTotal.WithLabelValues("ok")))
	assert.Equal(t, vertices+2, testutil.ToFloat64(committedVertices))
	assert.Equal(t, edges+1, testutil.ToFloat64(committedEdges))
}

func TestBootstrap(t *testing.T) {
	store := btreedb.New(nil)
	defer store.Close()

	db, err := Open(store, Options{Bootstrap: true})
	require.NoError(t, err)
	m := db.Begin()
	thing, err := m.GetTypeVertex(RootThing)
	require.NoError(t, err)
	require.NotNil(t, thing)
	assert.Equal(t, schema.ThingType, thing.Prefix())
	subs := collect(t, thing.Ins().Edges(schema.Sub))
	require.Len(t, subs, 4)
	labels := make([]string, 0, len(subs))
	for _, e := range subs {
		labels = append(labels, e.From().Label())
	}
	assert.ElementsMatch(t, []string{RootEntity, RootRelation, RootAttribute, RootRole}, labels)
	require.NoError(t, m.Rollback())

	keys := store.Len()
	_, err = Open(store, Options{Bootstrap: true})
	require.NoError(t, err)
	assert.Equal(t, keys, store.Len())
}

func TestSequenceMarkCommittedWithVertices(t *testing.T) {
	db, store := newTestDB(t)
	m := db.Begin()
	first := mustType(t, m, schema.EntityType, "person")
	require.NoError(t, m.Commit())
	assert.Equal(t, uint16(1), first.IID().ID())

	sets, _ := opKeys(store.last())
	assert.True(t, indexOf(sets, iid.Sequence(typeSequence(schema.EntityType))) >= 0,
		"mark written in the commit batch")

	// a new database over the same store continues after the committed step
	reopened, err := Open(store, Options{IDStep: 10})
	require.NoError(t, err)
	m = reopened.Begin()
	second := mustType(t, m, schema.EntityType, "animal")
	require.NoError(t, m.Commit())
	assert.Equal(t, uint16(11), second.IID().ID())
}

func TestConcurrentTypeLabelConflict(t *testing.T) {
	db, store := newTestDB(t)
	m1 := db.Begin()
	m2 := db.Begin()
	first := mustType(t, m1, schema.EntityType, "person")
	second := mustType(t, m2, schema.EntityType, "person")

	require.NoError(t, m1.Commit())
	err := m2.Commit()
	assert.True(t, errors.Is(err, ErrLabelTaken), "got %v", err)

	raw, err := store.Get(iid.TypeIndex("person"))
	require.NoError(t, err)
	assert.Equal(t, []byte(first.IID()), raw)
	raw, err = store.Get(second.IID())
	require.NoError(t, err)
	assert.Nil(t, raw)

	// the failed commit released the sequence lock
	m := db.Begin()
	mustType(t, m, schema.EntityType, "animal")
	require.NoError(t, m.Commit())
}

func TestRecreateDeletedLabel(t *testing.T) {
	db, store := newTestDB(t)
	m := db.Begin()
	old := mustType(t, m, schema.EntityType, "person")
	require.NoError(t, m.Commit())

	m = db.Begin()
	require.NoError(t, mustGet(t, m, old.IID()).Delete())
	again := mustType(t, m, schema.EntityType, "person")
	require.NoError(t, m.Commit())

	raw, err := store.Get(iid.TypeIndex("person"))
	require.NoError(t, err)
	assert.Equal(t, []byte(again.IID()), raw)
}

func TestOpenRequiresStore(t *testing.T) {
	_, err := Open(nil, Options{})
	assert.Error(t, err)
}
