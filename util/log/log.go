// Package log is the process-wide logger. Call sites use printf-style
// helpers, e.g. log.Info("store[%s] opened", path).
package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func logger() *zap.SugaredLogger {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if sugar == nil {
		sugar = newConsole().Sugar()
	}
	return sugar
}

func newConsole() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Init configures the level and, when path is not empty, redirects output to
// path/<module>.log in JSON form.
func Init(module, lvl, path string) error {
	if err := SetLevel(lvl); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{filepath.Join(path, module+".log")}
	cfg.ErrorOutputPaths = []string{filepath.Join(path, module+".err.log")}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// SetLogger replaces the underlying zap logger. The caller skip of l must
// account for this package's helpers.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
	sugar = l.Sugar()
}

// SetLevel accepts debug, info, warn or error.
func SetLevel(lvl string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

func IsDebugEnabled() bool {
	return logger().Desugar().Core().Enabled(zapcore.DebugLevel)
}

func Debug(format string, v ...interface{}) {
	logger().Debugf(format, v...)
}

func Info(format string, v ...interface{}) {
	logger().Infof(format, v...)
}

func Warn(format string, v ...interface{}) {
	logger().Warnf(format, v...)
}

func Error(format string, v ...interface{}) {
	logger().Errorf(format, v...)
}

func Panic(format string, v ...interface{}) {
	logger().Panicf(format, v...)
}

func Fatal(format string, v ...interface{}) {
	logger().Fatalf(format, v...)
}

// Flush syncs buffered entries, used before process exit.
func Flush() {
	if l := logger(); l != nil {
		_ = l.Sync()
	}
}
