package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiglabs/baudgraph/graph"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/boltdb"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/btreedb"
)

func TestDumpTypeIndex(t *testing.T) {
	store := btreedb.New(&btreedb.StoreConfig{})
	defer store.Close()
	_, err := graph.Open(store, graph.Options{Bootstrap: true})
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := dump(&out, store, []byte{byte(schema.IndexType)}, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[1:INDEX_TYPE]"), line)
	}
	assert.Contains(t, out.String(), `"thing"`)
}

func TestDumpLimitAndValues(t *testing.T) {
	store := btreedb.New(&btreedb.StoreConfig{})
	defer store.Close()
	_, err := graph.Open(store, graph.Options{Bootstrap: true})
	require.NoError(t, err)

	var all bytes.Buffer
	total, err := dump(&all, store, nil, 0, false)
	require.NoError(t, err)
	assert.Equal(t, store.Len(), total)

	var out bytes.Buffer
	n, err := dump(&out, store, nil, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, strings.Count(out.String(), " = "))
}

func TestPrintStats(t *testing.T) {
	store, err := boltdb.New(&boltdb.StoreConfig{Path: filepath.Join(t.TempDir(), "g.db"), NoSync: true})
	require.NoError(t, err)
	defer store.Close()
	_, err = graph.Open(store, graph.Options{Bootstrap: true})
	require.NoError(t, err)

	var all bytes.Buffer
	n, err := dump(&all, store, nil, 0, false)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printStats(&out, store))
	assert.Contains(t, out.String(), "bucket baudgraph: ")
	assert.Contains(t, out.String(), fmt.Sprintf(" %d keys,", n))

	out.Reset()
	mem := btreedb.New(nil)
	defer mem.Close()
	require.NoError(t, printStats(&out, mem))
	assert.Empty(t, out.String())
}
