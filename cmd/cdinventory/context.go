package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cdinventory/internal/catalogdb"
	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
	"cdinventory/internal/inventoryfile"
	"cdinventory/internal/logging"
)

type commandContext struct {
	configFlag *string
	fileFlag   *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, fileFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		fileFlag:   fileFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.fileFlag != nil {
			if file := strings.TrimSpace(*c.fileFlag); file != "" {
				expanded, err := config.ExpandPath(file)
				if err != nil {
					c.configErr = fmt.Errorf("resolve --file: %w", err)
					return
				}
				cfg.Inventory.Path = expanded
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "warn", Format: "console"})
			logger.Warn("logging configuration rejected, using defaults", logging.Error(err))
		}
		c.logger = logger
	})
	return c.logger
}

// backendHandle bundles an opened backend with the resources to release.
type backendHandle struct {
	inventory.Backend
	closeFn func() error
}

func (h *backendHandle) Close() error {
	if h == nil || h.closeFn == nil {
		return nil
	}
	return h.closeFn()
}

// openBackend opens the configured backend. The text backend is
// bootstrapped so a first run sees an empty inventory.
func openBackend(cfg *config.Config, logger *slog.Logger) (*backendHandle, error) {
	switch cfg.Inventory.Backend {
	case config.BackendSQLite:
		return openCatalog(cfg.Inventory.DatabasePath, logger)
	default:
		return openTextFile(cfg, logger)
	}
}

func openTextFile(cfg *config.Config, logger *slog.Logger) (*backendHandle, error) {
	format, err := inventoryfile.ParseFormat(cfg.Inventory.Format)
	if err != nil {
		return nil, err
	}
	file := inventoryfile.New(cfg.Inventory.Path,
		inventoryfile.WithFormat(format),
		inventoryfile.WithAtomicSave(cfg.Inventory.AtomicSave),
		inventoryfile.WithLogger(logger),
	)
	if err := file.Bootstrap(); err != nil {
		return nil, err
	}
	return &backendHandle{Backend: file}, nil
}

func openCatalog(path string, logger *slog.Logger) (*backendHandle, error) {
	store, err := catalogdb.Open(path, catalogdb.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &backendHandle{Backend: store, closeFn: store.Close}, nil
}

// acquireLock takes the session lock for path unless locking is disabled.
// The returned lock is nil when disabled; Release is nil-safe.
func acquireLock(cfg *config.Config, path string) (*inventoryfile.SessionLock, error) {
	if !cfg.Inventory.Lock {
		return nil, nil
	}
	return inventoryfile.AcquireSessionLock(path)
}

// withBackend loads configuration, optionally locks the storage, opens the
// backend, and runs fn.
func (c *commandContext) withBackend(cmd *cobra.Command, lock bool, fn func(*config.Config, inventory.Backend) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger := c.ensureLogger()

	if lock {
		sessionLock, err := acquireLock(cfg, cfg.StoragePath())
		if err != nil {
			return err
		}
		defer sessionLock.Release()
	}

	backend, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	logger.Debug("backend ready",
		logging.String(logging.FieldBackend, cfg.Inventory.Backend),
		logging.String(logging.FieldPath, backend.Location()),
		logging.String(logging.FieldCommand, cmd.Name()))
	return fn(cfg, backend)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
