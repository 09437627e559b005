package kvstore

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	engines = make(map[string]EngineBuilder, 4)

	ErrEngineNameInvalid = errors.New("registration name is invalid")
	ErrUnknownEngine     = errors.New("unknown storage engine")
)

// EngineBuilder is used to build a KVStore.
type EngineBuilder func(cfg EngineConfig) (KVStore, error)

// EngineConfig holds all configuration parameters used in setting up a new KVStore.
type EngineConfig struct {
	// Path is the data directory or file, ignored by in-memory engines.
	Path     string
	Sync     bool
	ReadOnly bool

	// Bucket is the bolt bucket holding every key.
	Bucket string
	// Degree is the btree fan-out of the in-memory engine.
	Degree int
	// MmapSize is the initial bolt mmap size in bytes.
	MmapSize int
}

// Register is used to register engine implementers in the initialization phase.
func Register(name string, builder EngineBuilder) {
	if name == "" || builder == nil {
		panic("registration name and builder cannot be empty")
	}
	if _, ok := engines[name]; ok {
		panic(fmt.Sprintf("duplicate registration engine name for %s", name))
	}

	engines[name] = builder
}

// Build creates a KVStore based on the specified engine name.
func Build(name string, cfg EngineConfig) (KVStore, error) {
	if name == "" {
		return nil, ErrEngineNameInvalid
	}

	builder := engines[name]
	if builder == nil {
		return nil, errors.Wrapf(ErrUnknownEngine, "engine[%s]", name)
	}
	return builder(cfg)
}

// Exist return whether the engine exists.
func Exist(name string) bool {
	return engines[name] != nil
}
