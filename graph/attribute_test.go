package graph

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

func TestPutAttributeDeduplicates(t *testing.T) {
	db, store := newTestDB(t)
	m := db.Begin()
	name := mustType(t, m, schema.AttributeType, "name")
	first := mustAttribute(t, m, name, "alice")
	assert.Same(t, first, mustAttribute(t, m, name, "alice"))
	assert.NotSame(t, first, mustAttribute(t, m, name, "bob"))
	assert.Equal(t, []byte("alice"), first.Value())
	require.NoError(t, m.Commit())

	val, err := store.Get(iid.AttributeIndex(name.IID(), []byte("alice")))
	require.NoError(t, err)
	assert.Equal(t, []byte(first.IID()), val)

	m = db.Begin()
	again := mustAttribute(t, m, name, "alice")
	assert.Equal(t, schema.Persisted, again.Status())
	assert.True(t, again.IID().Equal(first.IID()))
	assert.Equal(t, []byte("alice"), again.Value())
}

func TestPutAttributeValidation(t *testing.T) {
	db, _ := newTestDB(t)
	m := db.Begin()
	person := mustType(t, m, schema.EntityType, "person")
	_, err := m.PutAttribute(person.IID(), []byte("x"))
	assert.True(t, errors.Is(err, ErrIllegalOperation))
	_, err = m.PutAttribute(iid.NewType(schema.AttributeType, 77), []byte("x"))
	assert.True(t, errors.Is(err, ErrVertexNotFound))
}

func TestConcurrentAttributeConflict(t *testing.T) {
	db, _ := newTestDB(t)
	m := db.Begin()
	name := mustType(t, m, schema.AttributeType, "name")
	require.NoError(t, m.Commit())

	tx1, tx2 := db.Begin(), db.Begin()
	a1 := mustAttribute(t, tx1, name, "alice")
	a2 := mustAttribute(t, tx2, name, "alice")
	assert.False(t, a1.IID().Equal(a2.IID()))

	require.NoError(t, tx1.Commit())
	err := tx2.Commit()
	assert.True(t, errors.Is(err, ErrDuplicateAttribute))

	m = db.Begin()
	got := mustAttribute(t, m, name, "alice")
	assert.True(t, got.IID().Equal(a1.IID()))
	missing, err := m.GetVertex(a2.IID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttributeCommitNeedsGuard(t *testing.T) {
	db, _ := newTestDB(t)
	m := db.Begin()
	person := mustType(t, m, schema.EntityType, "person")
	name := mustType(t, m, schema.AttributeType, "name")
	require.NoError(t, m.Commit())

	m = db.Begin()
	attr := mustAttribute(t, m, name, "alice")
	err := attr.Commit(kvstore.NewBatch(), nil)
	assert.True(t, errors.Is(err, ErrAttributeLockNotHeld))

	guard := db.AttributeLock().Acquire()
	batch := kvstore.NewBatch()
	require.NoError(t, attr.Commit(batch, guard))
	assert.NotEmpty(t, batch.Operations())
	guard.Release()
	assert.False(t, guard.Held())
	guard.Release()

	alice := mustThing(t, m, mustGet(t, m, person.IID()))
	mustEdge(t, m, schema.Has, alice, attr)
	err = alice.Commit(kvstore.NewBatch(), nil)
	assert.True(t, errors.Is(err, ErrAttributeLockNotHeld))
	require.NoError(t, m.Rollback())
}

func TestCommitReleasesAttributeLock(t *testing.T) {
	db, _ := newTestDB(t)
	m := db.Begin()
	name := mustType(t, m, schema.AttributeType, "name")
	mustAttribute(t, m, name, "alice")
	require.NoError(t, m.Commit())

	done := make(chan struct{})
	go func() {
		db.AttributeLock().Acquire().Release()
		db.seqs.Lock()
		db.seqs.Unlock()
		close(done)
	}()
	<-done

	var nilGuard *AttributeGuard
	assert.False(t, nilGuard.Held())
	nilGuard.Release()
}
