package testsupport

import (
	"path/filepath"
	"testing"

	"cdinventory/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose inventory, database, and log paths live
// in a unique temp directory per test. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Inventory.Path = filepath.Join(base, "CDInventory.txt")
	cfgVal.Inventory.DatabasePath = filepath.Join(base, "inventory.db")
	cfgVal.Display.Color = config.ColorNever

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSQLite switches the test config to the SQLite backend.
func WithSQLite() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inventory.Backend = config.BackendSQLite
	}
}

// WithFormat sets the text inventory line encoding.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inventory.Format = format
	}
}

// WithoutLock disables the session lock.
func WithoutLock() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inventory.Lock = false
	}
}

// WithLogFile routes logs to a file under the test directory.
func WithLogFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, "logs", "cdinventory.log")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Inventory.Path)
}
