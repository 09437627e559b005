// Package badgerdb is the kvstore engine backed by badger.
package badgerdb

import (
	"os"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

const Name = "badger"

var _ kvstore.KVStore = &Store{}

func init() {
	kvstore.Register(Name, func(cfg kvstore.EngineConfig) (kvstore.KVStore, error) {
		return New(&StoreConfig{
			Path:     cfg.Path,
			Sync:     cfg.Sync,
			ReadOnly: cfg.ReadOnly,
		})
	})
}

type StoreConfig struct {
	Path     string
	Sync     bool
	ReadOnly bool
	// MaxTableSize also bounds the size of one transaction; zero keeps
	// badger's default.
	MaxTableSize int64
}

type Store struct {
	path string
	db   *badger.DB
}

func New(config *StoreConfig) (kvstore.KVStore, error) {
	if config == nil {
		return nil, errors.New("must provide config")
	}
	if config.Path == "" {
		return nil, os.ErrInvalid
	}
	path := config.Path
	opts := badger.DefaultOptions(path).
		WithSyncWrites(config.Sync).
		WithReadOnly(config.ReadOnly).
		WithLogger(logger{})
	if config.MaxTableSize > 0 {
		opts = opts.WithMaxTableSize(config.MaxTableSize)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	log.Info("badger store[%s] opened", path)
	rv := Store{
		path: path,
		db:   db,
	}
	return &rv, nil
}

func (bs *Store) Get(key []byte) (value []byte, err error) {
	if bs == nil {
		return nil, nil
	}
	err = bs.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return
}

func (bs *Store) Put(key []byte, value []byte) error {
	if bs == nil {
		return nil
	}
	return bs.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, value)
	})
}

func (bs *Store) Delete(key []byte) error {
	if bs == nil {
		return nil
	}
	return bs.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(key)
	})
}

func (bs *Store) MultiGet(keys [][]byte) ([][]byte, error) {
	if bs == nil {
		return nil, nil
	}
	snap, err := bs.GetSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()
	return snap.MultiGet(keys)
}

func (bs *Store) GetSnapshot() (kvstore.Snapshot, error) {
	tx := bs.db.NewTransaction(false)
	return &Snapshot{
		tx: tx,
	}, nil
}

func (bs *Store) PrefixIterator(prefix []byte) kvstore.KVIterator {
	return newIterator(bs.db.NewTransaction(false), true, prefix, kvstore.PrefixEnd(prefix))
}

func (bs *Store) RangeIterator(start, end []byte) kvstore.KVIterator {
	return newIterator(bs.db.NewTransaction(false), true, start, end)
}

func (bs *Store) NewKVBatch() kvstore.KVBatch {
	return kvstore.NewBatch()
}

// ExecuteBatch applies the batch in one badger transaction. A batch larger
// than one transaction can hold fails with badger.ErrTxnTooBig and writes
// nothing.
func (bs *Store) ExecuteBatch(batch kvstore.KVBatch) error {
	if bs == nil {
		return nil
	}
	if batch == nil {
		return nil
	}
	tx := bs.db.NewTransaction(true)
	defer tx.Discard()

	ops := batch.Operations()
	for i, op := range ops {
		if err := apply(tx, op); err != nil {
			if err == badger.ErrTxnTooBig {
				log.Warn("badger store[%s] batch of %d ops too big at op %d", bs.path, len(ops), i)
			}
			return errors.Wrapf(err, "badger store[%s] batch op %d", bs.path, i)
		}
	}
	return tx.Commit()
}

func apply(tx *badger.Txn, op kvstore.Operation) error {
	if op.IsDelete() {
		return tx.Delete(op.Key())
	}
	return tx.Set(op.Key(), op.Value())
}

func (bs *Store) Close() error {
	if bs == nil {
		return nil
	}
	log.Info("badger store[%s] closed", bs.path)
	return bs.db.Close()
}

// logger routes badger's own messages through util/log.
type logger struct{}

func (logger) Errorf(format string, v ...interface{})   { log.Error(format, v...) }
func (logger) Warningf(format string, v ...interface{}) { log.Warn(format, v...) }
func (logger) Infof(format string, v ...interface{})    { log.Debug(format, v...) }
func (logger) Debugf(format string, v ...interface{})   { log.Debug(format, v...) }
