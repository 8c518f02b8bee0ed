// Package config loads closurecheck settings: defaults, then an optional
// TOML file, then CLOSURECHECK_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/on-the-ground/closure_ive_go/tabular"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "CLOSURECHECK_"

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreMemDB  StoreKind = "memdb"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel  string    `env:"LOG_LEVEL"`
	Store     StoreKind `env:"STORE"`
	SQLiteDSN string    `env:"SQLITE_DSN"`
	// BufferSize and NumWorkers size the effect handlers.
	BufferSize int `env:"BUFFER_SIZE"`
	NumWorkers int `env:"NUM_WORKERS"`
	// Repeat is how many times each scenario runs.
	Repeat int `env:"REPEAT"`
}

func Default() Config {
	return Config{
		LogLevel:   "info",
		Store:      StoreSQLite,
		SQLiteDSN:  "",
		BufferSize: 16,
		NumWorkers: 2,
		Repeat:     1,
	}
}

// config.toml key mapping to Config.
type fileConfig struct {
	LogLevel   string `toml:"log_level"`
	Store      string `toml:"store"`
	SQLiteDSN  string `toml:"sqlite_dsn"`
	BufferSize int    `toml:"buffer_size"`
	NumWorkers int    `toml:"num_workers"`
	Repeat     int    `toml:"repeat"`
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment, in that order, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var err error
		if cfg, err = overlayFile(cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.TrimSpace(cfg.LogLevel)
	cfg.Store = StoreKind(strings.ToLower(strings.TrimSpace(string(cfg.Store))))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg Config, path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = raw.LogLevel
	}
	if meta.IsDefined("store") {
		cfg.Store = StoreKind(raw.Store)
	}
	if meta.IsDefined("sqlite_dsn") {
		cfg.SQLiteDSN = strings.TrimSpace(raw.SQLiteDSN)
	}
	if meta.IsDefined("buffer_size") {
		cfg.BufferSize = raw.BufferSize
	}
	if meta.IsDefined("num_workers") {
		cfg.NumWorkers = raw.NumWorkers
	}
	if meta.IsDefined("repeat") {
		cfg.Repeat = raw.Repeat
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	switch c.Store {
	case StoreSQLite, StoreMemDB:
	default:
		return fmt.Errorf("%w: unsupported store %q (expected sqlite or memdb)", ErrInvalidConfig, c.Store)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("%w: buffer size must be positive, got %d", ErrInvalidConfig, c.BufferSize)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	if c.Repeat <= 0 {
		return fmt.Errorf("%w: repeat must be positive, got %d", ErrInvalidConfig, c.Repeat)
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return zc.Build()
}

// OpenStore opens the configured table store.
func (c Config) OpenStore(ctx context.Context) (tabular.Store, error) {
	switch c.Store {
	case StoreSQLite:
		return tabular.OpenSQLite(ctx, c.SQLiteDSN)
	case StoreMemDB:
		return tabular.NewMemDB()
	default:
		return nil, fmt.Errorf("%w: unsupported store %q", ErrInvalidConfig, c.Store)
	}
}
