package testsupport

import (
	"context"
	"testing"

	"cdinventory/internal/catalogdb"
	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
)

// MustOpenCatalog opens the SQLite inventory named by cfg and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalogdb.Store {
	t.Helper()

	store, err := catalogdb.Open(cfg.Inventory.DatabasePath)
	if err != nil {
		t.Fatalf("catalogdb.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCatalog replaces the contents of the SQLite inventory named by cfg.
func SeedCatalog(t testing.TB, cfg *config.Config, records ...inventory.Record) {
	t.Helper()

	store, err := catalogdb.Open(cfg.Inventory.DatabasePath)
	if err != nil {
		t.Fatalf("catalogdb.Open: %v", err)
	}
	defer store.Close()
	if err := store.Save(context.Background(), records); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}
