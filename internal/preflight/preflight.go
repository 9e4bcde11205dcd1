package preflight

import (
	"context"
	"path/filepath"

	"cdinventory/internal/config"
)

// Result reports the outcome of a single preflight check. Missing marks a
// passing check whose storage has not been created yet.
type Result struct {
	Name    string
	Passed  bool
	Missing bool
	Detail  string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Inventory directory", filepath.Dir(cfg.Inventory.Path)),
		CheckInventoryFile(cfg.Inventory.Path, cfg.Inventory.Format),
	}

	if cfg.Inventory.Backend == config.BackendSQLite {
		results = append(results, CheckDatabase(ctx, cfg.Inventory.DatabasePath))
	}

	if cfg.Inventory.Lock {
		results = append(results, CheckSessionLock(cfg.StoragePath()))
	}

	return results
}
