package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cdinventory/internal/catalogdb"
	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
	"cdinventory/internal/inventoryfile"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckInventoryFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(good, []byte("1,Blue,Joni Mitchell\n2,Low,David Bowie\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("1,Blue,Joni Mitchell\nx,Low,David Bowie\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		path   string
		format string
		pass   bool
		detail string
	}{
		{name: "parses", path: good, format: "plain", pass: true, detail: "2 records"},
		{name: "missing", path: filepath.Join(dir, "absent.txt"), format: "plain", pass: true, detail: "not created yet"},
		{name: "malformed", path: bad, format: "plain", detail: "bad.txt:2"},
		{name: "bad format", path: good, format: "xml", detail: "unsupported"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := CheckInventoryFile(tc.path, tc.format)
			if result.Passed != tc.pass {
				t.Fatalf("Passed = %v, want %v (%s)", result.Passed, tc.pass, result.Detail)
			}
			if result.Missing != (tc.name == "missing") {
				t.Fatalf("Missing = %v for %s", result.Missing, tc.name)
			}
			if !strings.Contains(result.Detail, tc.detail) {
				t.Fatalf("expected detail containing %q, got %q", tc.detail, result.Detail)
			}
		})
	}
}

func TestCheckDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	result := CheckDatabase(context.Background(), path)
	if !result.Passed || !result.Missing || !strings.Contains(result.Detail, "not created yet") {
		t.Fatalf("expected missing database to pass, got %+v", result)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("check must not create the database")
	}

	store, err := catalogdb.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Save(context.Background(), []inventory.Record{{ID: 1, Title: "A", Artist: "B"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = store.Close()

	result = CheckDatabase(context.Background(), path)
	if !result.Passed || !strings.Contains(result.Detail, "1 record") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckSessionLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CDInventory.txt")
	if result := CheckSessionLock(path); !result.Passed {
		t.Fatalf("expected free lock, got %s", result.Detail)
	}

	lock, err := inventoryfile.AcquireSessionLock(path)
	if err != nil {
		t.Fatalf("AcquireSessionLock: %v", err)
	}
	defer lock.Release()

	if result := CheckSessionLock(path); result.Passed {
		t.Fatal("expected held lock to fail the check")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_TextBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Inventory.Path = filepath.Join(t.TempDir(), "CDInventory.txt")

	results := RunAll(context.Background(), &cfg)
	// directory + file + lock
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAll_IncludesDatabaseForSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Inventory.Path = filepath.Join(dir, "CDInventory.txt")
	cfg.Inventory.Backend = config.BackendSQLite
	cfg.Inventory.DatabasePath = filepath.Join(dir, "inventory.db")
	cfg.Inventory.Lock = false

	results := RunAll(context.Background(), &cfg)
	found := false
	for _, r := range results {
		if r.Name == "Session lock" {
			t.Fatal("lock check should be skipped when locking is disabled")
		}
		if r.Name == "Inventory database" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected database check in results")
	}
}
