package kvstore

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("doh"), PrefixEnd([]byte("dog")))
	assert.Equal(t, []byte{0x01, 0x03}, PrefixEnd([]byte{0x01, 0x02, 0xff}))
	assert.Nil(t, PrefixEnd([]byte{0xff, 0xff}))
	assert.Nil(t, PrefixEnd(nil))
}

func TestBatchCopiesAndOrders(t *testing.T) {
	b := NewBatch()
	key := []byte("k")
	b.Set(key, []byte{})
	b.Delete(key)
	key[0] = 'z'

	ops := b.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, []byte("k"), ops[0].Key())
	assert.False(t, ops[0].IsDelete(), "empty value is still a set")
	assert.True(t, ops[1].IsDelete())

	b.Reset()
	assert.Empty(t, b.Operations())
	assert.NoError(t, b.Close())
}

func TestRegistry(t *testing.T) {
	Register("unit-test", func(cfg EngineConfig) (KVStore, error) {
		return nil, errors.New(cfg.Path)
	})
	assert.True(t, Exist("unit-test"))
	assert.Panics(t, func() {
		Register("unit-test", func(EngineConfig) (KVStore, error) { return nil, nil })
	})

	_, err := Build("unit-test", EngineConfig{Path: "boom"})
	assert.EqualError(t, err, "boom")

	_, err = Build("missing", EngineConfig{})
	assert.True(t, errors.Is(err, ErrUnknownEngine))

	_, err = Build("", EngineConfig{})
	assert.Equal(t, ErrEngineNameInvalid, err)
}

func TestErrIterator(t *testing.T) {
	cause := errors.New("io")
	it := &ErrIterator{Cause: cause}
	it.Seek([]byte("a"))
	it.Next()
	assert.False(t, it.Valid())
	assert.Equal(t, cause, it.Err())
	assert.Equal(t, cause, it.Close())
}
