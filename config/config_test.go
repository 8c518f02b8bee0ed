package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/closure_ive_go/config"
	"github.com/on-the-ground/closure_ive_go/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileOverlaysDefinedKeysOnly(t *testing.T) {
	path := writeConfig(t, `
store = "memdb"
repeat = 3
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	want := config.Default()
	want.Store = config.StoreMemDB
	want.Repeat = 3
	assert.Equal(t, want, cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "warn"
num_workers = 4
`)
	t.Setenv("CLOSURECHECK_LOG_LEVEL", "debug")
	t.Setenv("CLOSURECHECK_STORE", " MemDB ")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.StoreMemDB, cfg.Store)
	assert.Equal(t, 4, cfg.NumWorkers)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
	t.Run("unknown key", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, `stroe = "memdb"`))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
	t.Run("unknown store", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, `store = "postgres"`))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("CLOSURECHECK_REPEAT", "often")
		_, err := config.Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"log level":   func(c *config.Config) { c.LogLevel = "loud" },
		"store":       func(c *config.Config) { c.Store = "" },
		"buffer size": func(c *config.Config) { c.BufferSize = 0 },
		"num workers": func(c *config.Config) { c.NumWorkers = -1 },
		"repeat":      func(c *config.Config) { c.Repeat = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestOpenStore(t *testing.T) {
	for _, kind := range []config.StoreKind{config.StoreSQLite, config.StoreMemDB} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := config.Default()
			cfg.Store = kind
			store, err := cfg.OpenStore(context.Background())
			require.NoError(t, err)
			defer store.Close()
			assert.NoError(t, store.CreateTableIfAbsent(context.Background(), tabular.ArticlesTable))
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
