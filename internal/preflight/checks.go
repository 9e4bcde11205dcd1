package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"cdinventory/internal/catalogdb"
	"cdinventory/internal/inventory"
	"cdinventory/internal/inventoryfile"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckInventoryFile verifies the text inventory parses. A missing file
// passes because the shell creates it on first start.
func CheckInventoryFile(path, format string) Result {
	const name = "Inventory file"

	parsed, err := inventoryfile.ParseFormat(format)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	records, err := inventoryfile.Load(path, parsed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Passed: true, Missing: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
		}
		var fe *inventory.FormatError
		if errors.As(err, &fe) {
			return Result{Name: name, Detail: fmt.Sprintf("malformed: %v", fe)}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, recordCount(len(records)))}
}

// CheckDatabase verifies the SQLite inventory opens with the expected schema.
func CheckDatabase(ctx context.Context, path string) Result {
	const name = "Inventory database"

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Passed: true, Missing: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}
	store, err := catalogdb.Open(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	records, err := store.Load(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, recordCount(len(records)))}
}

// CheckSessionLock reports whether another editing session holds the lock
// for storagePath.
func CheckSessionLock(storagePath string) Result {
	const name = "Session lock"

	lock, err := inventoryfile.AcquireSessionLock(storagePath)
	if err != nil {
		if errors.Is(err, inventoryfile.ErrLocked) {
			return Result{Name: name, Detail: "held by another editing session"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if err := lock.Release(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: "free"}
}

func recordCount(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}
