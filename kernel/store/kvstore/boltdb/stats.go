package boltdb

import (
	"github.com/boltdb/bolt"
)

// Stats describes the graph bucket and the bolt file holding it.
type Stats struct {
	Path       string `json:"path"`
	Bucket     string `json:"bucket"`
	Keys       int    `json:"keys"`
	Depth      int    `json:"depth"`
	LeafPages  int    `json:"leaf_pages"`
	FreePages  int    `json:"free_pages"`
	OpenReadTx int    `json:"open_read_tx"`
	WriteTx    int    `json:"write_tx"`
}

func (bs *Store) Stats() (Stats, error) {
	rv := Stats{Path: bs.path, Bucket: string(bs.bucket)}
	err := bs.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		s := b.Stats()
		rv.Keys = s.KeyN
		rv.Depth = s.Depth
		rv.LeafPages = s.LeafPageN
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	// sampled after View returns so its own read tx is not counted
	dbs := bs.db.Stats()
	rv.FreePages = dbs.FreePageN
	rv.OpenReadTx = dbs.OpenTxN
	rv.WriteTx = dbs.TxStats.Write
	return rv, nil
}
