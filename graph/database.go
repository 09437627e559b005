// Package graph stores a typed property hypergraph in an ordered key-value
// store. Vertices and edges created by a transaction are buffered in memory
// until commit; stored ones are read back lazily by key and prefix scans.
package graph

import (
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/idgen"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

// Root type labels created by bootstrap.
const (
	RootThing     = "thing"
	RootEntity    = "entity"
	RootRelation  = "relation"
	RootAttribute = "attribute"
	RootRole      = "role"
)

var roots = []struct {
	prefix schema.Prefix
	label  string
}{
	{schema.EntityType, RootEntity},
	{schema.RelationType, RootRelation},
	{schema.AttributeType, RootAttribute},
	{schema.RoleType, RootRole},
}

type Options struct {
	// IDStep is how many ids a sequence reserves per store write.
	IDStep uint64
	// Bootstrap creates the root types when they are missing.
	Bootstrap bool
}

// Database is shared by all transactions over one store.
type Database struct {
	store         kvstore.KVStore
	opts          Options
	attributeLock *AttributeLock
	seqs          *idgen.Generators
}

func Open(store kvstore.KVStore, opts Options) (*Database, error) {
	if store == nil {
		return nil, errors.New("must provide store")
	}
	if opts.IDStep == 0 {
		opts.IDStep = idgen.DefaultStep
	}
	db := &Database{
		store:         store,
		opts:          opts,
		attributeLock: &AttributeLock{},
		seqs:          idgen.NewGenerators(store, opts.IDStep),
	}
	if opts.Bootstrap {
		if err := db.bootstrap(); err != nil {
			return nil, err
		}
	}
	log.Info("graph database opened, bootstrap %v", opts.Bootstrap)
	return db, nil
}

func (db *Database) Begin() *Manager {
	return newManager(db)
}

func (db *Database) Store() kvstore.KVStore {
	return db.store
}

// AttributeLock is the lock commits take before writing attributes.
func (db *Database) AttributeLock() *AttributeLock {
	return db.attributeLock
}

func (db *Database) bootstrap() error {
	m := db.Begin()
	thing, err := m.GetTypeVertex(RootThing)
	if err != nil {
		m.Rollback()
		return err
	}
	if thing == nil {
		if thing, err = m.CreateTypeVertex(schema.ThingType, RootThing); err != nil {
			m.Rollback()
			return err
		}
	}
	for _, root := range roots {
		v, err := m.GetTypeVertex(root.label)
		if err != nil {
			m.Rollback()
			return err
		}
		if v != nil {
			continue
		}
		if v, err = m.CreateTypeVertex(root.prefix, root.label); err != nil {
			m.Rollback()
			return err
		}
		if _, err = m.PutEdge(schema.Sub, v, thing); err != nil {
			m.Rollback()
			return err
		}
	}
	if !m.dirty() {
		return m.Rollback()
	}
	log.Info("graph bootstrap creating root types")
	return m.Commit()
}
