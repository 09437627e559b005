// Package config loads the TOML configuration of a graph process.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

const DEFAULT_CONFIG = `
# Graph Store Configuration.

[module]
name = "baudgraph"
data-path = "/tmp/baudgraph/data"

[log]
# empty log-path logs to stderr
log-path = ""
#debug, info, warn, error
level = "info"

[storage]
#badger, bolt, btree
engine = "badger"
# defaults to <data-path>/<engine>
path = ""
sync = true
read-only = false
bucket = "baudgraph"
degree = 32
mmap-size = 67108864

[graph]
id-step = 100
bootstrap = true
`

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ModuleCfg  ModuleConfig  `toml:"module,omitempty" json:"module"`
	LogCfg     LogConfig     `toml:"log,omitempty" json:"log"`
	StorageCfg StorageConfig `toml:"storage,omitempty" json:"storage"`
	GraphCfg   GraphConfig   `toml:"graph,omitempty" json:"graph"`
}

// NewConfig decodes the defaults, overlays the file at path when it is not
// empty, then validates every section. The configured storage engine must
// already be registered with kvstore.
func NewConfig(path string) (*Config, error) {
	c := new(Config)

	if _, err := toml.Decode(DEFAULT_CONFIG, c); err != nil {
		log.Panic("fail to decode default config, err[%v]", err)
	}

	if len(path) != 0 {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, errors.Wrapf(err, "decode config file[%v]", path)
		}
	}

	if err := c.adjust(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) adjust() error {
	if err := c.ModuleCfg.adjust(); err != nil {
		return err
	}
	if err := c.LogCfg.adjust(); err != nil {
		return err
	}
	if err := c.StorageCfg.adjust(c.ModuleCfg.DataPath); err != nil {
		return err
	}
	return c.GraphCfg.adjust()
}

type ModuleConfig struct {
	Name     string `toml:"name,omitempty" json:"name"`
	DataPath string `toml:"data-path,omitempty" json:"data-path"`
}

func (cfg *ModuleConfig) adjust() error {
	if err := adjustString(&cfg.Name, "no module name"); err != nil {
		return err
	}
	return adjustString(&cfg.DataPath, "no data path")
}

type LogConfig struct {
	LogPath string `toml:"log-path,omitempty" json:"log-path"`
	Level   string `toml:"level,omitempty" json:"level"`
}

func (c *LogConfig) adjust() error {
	if err := adjustString(&c.Level, "no log level"); err != nil {
		return err
	}
	c.Level = strings.ToLower(c.Level)
	switch c.Level {
	case log.LevelDebug:
	case log.LevelInfo:
	case log.LevelWarn:
	case log.LevelError:
	default:
		return errors.Wrapf(ErrInvalidConfig, "log level[%v]", c.Level)
	}
	return nil
}

type StorageConfig struct {
	Engine   string `toml:"engine,omitempty" json:"engine"`
	Path     string `toml:"path,omitempty" json:"path"`
	Sync     bool   `toml:"sync" json:"sync"`
	ReadOnly bool   `toml:"read-only" json:"read-only"`
	Bucket   string `toml:"bucket,omitempty" json:"bucket"`
	Degree   int    `toml:"degree,omitempty" json:"degree"`
	MmapSize int    `toml:"mmap-size,omitempty" json:"mmap-size"`
}

func (c *StorageConfig) adjust(dataPath string) error {
	if err := adjustString(&c.Engine, "no storage engine"); err != nil {
		return err
	}
	if !kvstore.Exist(c.Engine) {
		return errors.Wrapf(kvstore.ErrUnknownEngine, "engine[%v]", c.Engine)
	}
	if c.Path == "" {
		c.Path = filepath.Join(dataPath, c.Engine)
	}
	if c.Degree < 2 {
		return errors.Wrapf(ErrInvalidConfig, "btree degree[%d]", c.Degree)
	}
	if c.MmapSize < 0 {
		return errors.Wrapf(ErrInvalidConfig, "mmap size[%d]", c.MmapSize)
	}
	return nil
}

// EngineConfig creates the parent directory of the store path.
func (c *StorageConfig) EngineConfig() (kvstore.EngineConfig, error) {
	if err := os.MkdirAll(filepath.Dir(c.Path), os.ModePerm); err != nil {
		return kvstore.EngineConfig{}, errors.Wrapf(err, "create storage path[%v]", c.Path)
	}
	return kvstore.EngineConfig{
		Path:     c.Path,
		Sync:     c.Sync,
		ReadOnly: c.ReadOnly,
		Bucket:   c.Bucket,
		Degree:   c.Degree,
		MmapSize: c.MmapSize,
	}, nil
}

type GraphConfig struct {
	IDStep    uint64 `toml:"id-step,omitempty" json:"id-step"`
	Bootstrap bool   `toml:"bootstrap" json:"bootstrap"`
}

func (c *GraphConfig) adjust() error {
	return adjustUint64(&c.IDStep, "no id-step")
}

func (c *GraphConfig) Options() graph.Options {
	return graph.Options{
		IDStep:    c.IDStep,
		Bootstrap: c.Bootstrap,
	}
}

func adjustString(v *string, errMsg string) error {
	if len(*v) == 0 {
		return errors.Wrapf(ErrInvalidConfig, "Config adjust string error, %v", errMsg)
	}
	return nil
}

func adjustUint64(v *uint64, errMsg string) error {
	if *v == 0 {
		return errors.Wrapf(ErrInvalidConfig, "Config adjust uint64 error, %v", errMsg)
	}
	return nil
}
