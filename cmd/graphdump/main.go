// Command graphdump prints the keys of a graph store section by section.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/config"
	"github.com/tiglabs/baudgraph/graph"
	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	_ "github.com/tiglabs/baudgraph/kernel/store/kvstore/badgerdb"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore/boltdb"
	_ "github.com/tiglabs/baudgraph/kernel/store/kvstore/btreedb"
	"github.com/tiglabs/baudgraph/util/log"
)

var (
	configFile = flag.String("c", "", "config file path")
	prefixHex  = flag.String("prefix", "", "hex encoded key prefix, empty dumps every key")
	limit      = flag.Int("limit", 0, "stop after this many keys, 0 means no limit")
	values     = flag.Bool("values", false, "print values as hex")
	stats      = flag.Bool("stats", false, "print bolt bucket statistics after the dump")
)

func main() {
	flag.Parse()

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "graphdump: %v\n", err)
		log.Flush()
		os.Exit(1)
	}
	log.Flush()
}

func run(w io.Writer) error {
	cfg, err := config.NewConfig(*configFile)
	if err != nil {
		return err
	}
	if err := log.Init(cfg.ModuleCfg.Name, cfg.LogCfg.Level, cfg.LogCfg.LogPath); err != nil {
		return errors.Wrap(err, "init log")
	}

	prefix, err := hex.DecodeString(*prefixHex)
	if err != nil {
		return errors.Wrapf(err, "prefix[%v]", *prefixHex)
	}

	engineCfg, err := cfg.StorageCfg.EngineConfig()
	if err != nil {
		return err
	}
	store, err := kvstore.Build(cfg.StorageCfg.Engine, engineCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if !cfg.StorageCfg.ReadOnly {
		// Open bootstraps the root types of an empty store.
		if _, err := graph.Open(store, cfg.GraphCfg.Options()); err != nil {
			return err
		}
	}

	n, err := dump(w, store, prefix, *limit, *values)
	if err != nil {
		return err
	}
	log.Info("dumped %d keys from %s store[%s]", n, cfg.StorageCfg.Engine, engineCfg.Path)
	if *stats {
		return printStats(w, store)
	}
	return nil
}

// printStats only knows bolt; other engines report nothing.
func printStats(w io.Writer, store kvstore.KVStore) error {
	bs, ok := store.(*boltdb.Store)
	if !ok {
		return nil
	}
	s, err := bs.Stats()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "bucket %s: %d keys, depth %d, %d leaf pages, %d free pages\n",
		s.Bucket, s.Keys, s.Depth, s.LeafPages, s.FreePages)
	return err
}

// dump writes one line per key under prefix and returns the number of keys
// written.
func dump(w io.Writer, store kvstore.KVStore, prefix []byte, limit int, withValues bool) (int, error) {
	snap, err := store.GetSnapshot()
	if err != nil {
		return 0, errors.Wrap(err, "snapshot")
	}
	defer snap.Close()

	it := snap.PrefixIterator(prefix)
	defer it.Close()

	n := 0
	for ; it.Valid(); it.Next() {
		if limit > 0 && n >= limit {
			break
		}
		key, val, _ := it.Current()
		if withValues {
			_, err = fmt.Fprintf(w, "%s = %x\n", iid.Describe(key), val)
		} else {
			_, err = fmt.Fprintln(w, iid.Describe(key))
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, it.Err()
}
