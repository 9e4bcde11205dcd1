package catalogdb_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"cdinventory/internal/catalogdb"
	"cdinventory/internal/inventory"
)

func openStore(t *testing.T, path string) *catalogdb.Store {
	t.Helper()
	store, err := catalogdb.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.db")
	store := openStore(t, path)

	if store.Location() != path {
		t.Fatalf("unexpected location %q", store.Location())
	}
	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty catalog, got %v", records)
	}
}

func TestSaveLoadPreservesOrderAndDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	store := openStore(t, path)
	ctx := context.Background()

	want := []inventory.Record{
		{ID: 7, Title: "Blue", Artist: "Joni Mitchell"},
		{ID: 1, Title: "Hello, Goodbye", Artist: "The Beatles"},
		{ID: 7, Title: "Court and Spark", Artist: "Joni Mitchell"},
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", got, want)
	}

	if err := store.Save(ctx, want[:1]); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after shrink: %v", err)
	}
	if !reflect.DeepEqual(got, want[:1]) {
		t.Fatalf("expected save to replace contents, got %v", got)
	}
}

func TestSaveEmptyClearsCatalog(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "inventory.db"))
	ctx := context.Background()
	if err := store.Save(ctx, []inventory.Record{{ID: 1, Title: "A", Artist: "B"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty catalog, got %v", got)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	ctx := context.Background()
	first, err := catalogdb.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []inventory.Record{{ID: 3, Title: "Kind of Blue", Artist: "Miles Davis"}}
	if err := first.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openStore(t, path)
	got, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v after reopen, got %v", want, got)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	store, err := catalogdb.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = db.Close()

	_, err = catalogdb.Open(path)
	if !errors.Is(err, catalogdb.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "inventory.db"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Load(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if err := store.Save(ctx, []inventory.Record{{ID: 1}}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestBackupWritesReadableCopy(t *testing.T) {
	dir := t.TempDir()
	store := openStore(t, filepath.Join(dir, "inventory.db"))
	ctx := context.Background()
	want := []inventory.Record{{ID: 9, Title: "Horses", Artist: "Patti Smith"}}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := filepath.Join(dir, "inventory.db.bak")
	for i := 0; i < 2; i++ {
		if err := store.Backup(ctx, dst); err != nil {
			t.Fatalf("Backup #%d: %v", i+1, err)
		}
	}

	backup := openStore(t, dst)
	got, err := backup.Load(ctx)
	if err != nil {
		t.Fatalf("Load backup: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("backup holds %v, want %v", got, want)
	}
}
