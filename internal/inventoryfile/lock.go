package inventoryfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another editor already holds the session lock.
var ErrLocked = errors.New("inventory is locked by another editing session")

// SessionLock is an advisory lock held for the lifetime of one editing
// session. It guards against two editors overwriting each other's saves; it
// does not stop other programs from writing the file.
type SessionLock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file used for an inventory file.
func LockPath(inventoryPath string) string {
	return inventoryPath + ".lock"
}

// AcquireSessionLock takes a non-blocking exclusive lock next to
// inventoryPath. It fails with ErrLocked when the lock is already held.
func AcquireSessionLock(inventoryPath string) (*SessionLock, error) {
	lockPath := LockPath(inventoryPath)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, lockPath)
	}
	return &SessionLock{path: lockPath, lock: lock}, nil
}

// Path returns the lock file path.
func (l *SessionLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the session. The lock file stays on disk: removing it would
// let a later editor lock a fresh inode while another still holds the old
// one. It is safe to call on a nil lock and more than once.
func (l *SessionLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	l.lock = nil
	return nil
}
