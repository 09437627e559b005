// Package boltdb is the kvstore engine backed by a single bolt bucket.
//
// Bolt remaps its data file while a read-write transaction grows it, and the
// remap waits for open read transactions. Snapshots and iterators must
// therefore be closed before the same goroutine executes a batch, unless the
// initial mmap size covers the database.
package boltdb

import (
	"os"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

const (
	Name = "bolt"

	defaultBucket   = "baudgraph"
	defaultMmapSize = 1 << 26
)

var (
	_ kvstore.KVStore = &Store{}

	// ErrBucketNotFound is returned by a read-only store whose file lacks the
	// configured bucket.
	ErrBucketNotFound = errors.New("bolt bucket not found")
)

func init() {
	kvstore.Register(Name, func(cfg kvstore.EngineConfig) (kvstore.KVStore, error) {
		return New(&StoreConfig{
			Path:     cfg.Path,
			Bucket:   cfg.Bucket,
			NoSync:   !cfg.Sync,
			ReadOnly: cfg.ReadOnly,
			MmapSize: cfg.MmapSize,
		})
	})
}

type StoreConfig struct {
	Path        string
	Bucket      string
	NoSync      bool
	ReadOnly    bool
	FillPercent float64
	MmapSize    int
}

type Store struct {
	path        string
	bucket      []byte
	db          *bolt.DB
	noSync      bool
	fillPercent float64
}

func New(config *StoreConfig) (kvstore.KVStore, error) {
	if config == nil {
		return nil, errors.New("must provide config")
	}
	if config.Path == "" {
		return nil, os.ErrInvalid
	}
	path := config.Path
	bucket := config.Bucket
	if config.Bucket == "" {
		bucket = defaultBucket
	}
	noSync := config.NoSync
	fillPercent := config.FillPercent
	if fillPercent == 0.0 {
		fillPercent = bolt.DefaultFillPercent
	}
	mmapSize := config.MmapSize
	if mmapSize <= 0 {
		mmapSize = defaultMmapSize
	}

	bo := &bolt.Options{
		Timeout:         time.Second,
		ReadOnly:        config.ReadOnly,
		InitialMmapSize: mmapSize,
	}

	db, err := bolt.Open(path, 0600, bo)
	if err != nil {
		return nil, err
	}
	db.NoSync = noSync

	if !bo.ReadOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))

			return err
		})
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	log.Info("bolt store[%s] opened, bucket[%s]", path, bucket)
	rv := Store{
		path:        path,
		bucket:      []byte(bucket),
		db:          db,
		noSync:      noSync,
		fillPercent: fillPercent,
	}
	return &rv, nil
}

func (bs *Store) Get(key []byte) (value []byte, err error) {
	if bs == nil {
		return nil, nil
	}
	err = bs.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		v := b.Get(key)
		if v != nil {
			value = cloneBytes(v)
		}
		return nil
	})
	return
}

func (bs *Store) Put(key []byte, value []byte) error {
	if bs == nil {
		return nil
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Put(key, value)
	})
}

func (bs *Store) Delete(key []byte) error {
	if bs == nil {
		return nil
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Delete(key)
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
	tx, err := bs.db.Begin(false)
	if err != nil {
		return nil, err
	}
	bucket := tx.Bucket(bs.bucket)
	if bucket == nil {
		_ = tx.Rollback()
		return nil, ErrBucketNotFound
	}
	return &Snapshot{
		tx:     tx,
		bucket: bucket,
	}, nil
}

func (bs *Store) PrefixIterator(prefix []byte) kvstore.KVIterator {
	return bs.RangeIterator(prefix, kvstore.PrefixEnd(prefix))
}

func (bs *Store) RangeIterator(start, end []byte) kvstore.KVIterator {
	tx, err := bs.db.Begin(false)
	if err != nil {
		return &kvstore.ErrIterator{Cause: err}
	}
	return newIterator(tx, tx.Bucket(bs.bucket), start, end)
}

func (bs *Store) NewKVBatch() kvstore.KVBatch {
	return kvstore.NewBatch()
}

func (bs *Store) ExecuteBatch(batch kvstore.KVBatch) (err error) {
	if bs == nil {
		return nil
	}
	if batch == nil {
		return nil
	}
	var tx *bolt.Tx
	tx, err = bs.db.Begin(true)
	if err != nil {
		return
	}

	defer func() {
		if err == nil {
			err = tx.Commit()
		} else {
			_ = tx.Rollback()
		}
	}()

	bucket := tx.Bucket(bs.bucket)
	if bucket == nil {
		err = ErrBucketNotFound
		return
	}
	bucket.FillPercent = bs.fillPercent

	for _, op := range batch.Operations() {
		if op.IsDelete() {
			err = bucket.Delete(op.Key())
		} else {
			err = bucket.Put(op.Key(), op.Value())
		}
		if err != nil {
			return
		}
	}
	return
}

func (bs *Store) Close() error {
	if bs == nil {
		return nil
	}
	log.Info("bolt store[%s] closed", bs.path)
	return bs.db.Close()
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
