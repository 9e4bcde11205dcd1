package catalogdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cdinventory/internal/inventory"
	"cdinventory/internal/logging"
)

// Store is an inventory.Backend backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open initializes or connects to the inventory database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	for _, opt := range opts {
		opt(store)
	}
	store.logger = logging.NewComponentLogger(store.logger, "catalogdb")

	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Location returns the database path.
func (s *Store) Location() string {
	return s.path
}

// Load implements inventory.Backend. Records come back in saved order.
func (s *Store) Load(ctx context.Context) ([]inventory.Record, error) {
	var records []inventory.Record
	err := retryOnBusy(ctx, func() error {
		records = records[:0]
		rows, err := s.db.QueryContext(ctx, "SELECT cd_id, title, artist FROM records ORDER BY position")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var rec inventory.Record
			if err := rows.Scan(&rec.ID, &rec.Title, &rec.Artist); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("load records from %q: %w", s.path, err)
	}
	s.logger.Debug("loaded inventory",
		logging.String(logging.FieldPath, s.path),
		logging.Int(logging.FieldRecordCount, len(records)))
	return records, nil
}

// Save implements inventory.Backend. The table is replaced atomically; a
// failed save leaves the previous contents intact.
func (s *Store) Save(ctx context.Context, records []inventory.Record) error {
	err := retryOnBusy(ctx, func() error {
		return s.replaceAll(ctx, records)
	})
	if err != nil {
		return fmt.Errorf("save records to %q: %w", s.path, err)
	}
	s.logger.Debug("saved inventory",
		logging.String(logging.FieldPath, s.path),
		logging.Int(logging.FieldRecordCount, len(records)))
	return nil
}

func (s *Store) replaceAll(ctx context.Context, records []inventory.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO records (position, cd_id, title, artist) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i+1, rec.ID, rec.Title, rec.Artist); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Backup writes a consistent copy of the database to dst, replacing any
// existing file there.
func (s *Store) Backup(ctx context.Context, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove old backup %q: %w", dst, err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		return fmt.Errorf("back up %q: %w", s.path, err)
	}
	s.logger.Debug("backed up inventory", logging.String(logging.FieldPath, dst))
	return nil
}

var _ inventory.Backend = (*Store)(nil)
