package inventoryfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kjk/common/atomicfile"

	"cdinventory/internal/fileutil"
	"cdinventory/internal/inventory"
	"cdinventory/internal/logging"
)

// DefaultFileName is the inventory file used when nothing else is configured.
const DefaultFileName = "CDInventory.txt"

// EnsureExists creates an empty inventory file at path when none exists so
// the first Load of a fresh install succeeds. It reports whether a file was
// created.
func EnsureExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat inventory %q: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create inventory directory %q: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create inventory %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close inventory %q: %w", path, err)
	}
	return true, nil
}

// Load reads all records from the file at path.
func Load(path string, format Format) ([]inventory.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory %q: %w", path, err)
	}
	defer file.Close()

	records, err := Decode(file, format)
	if err != nil {
		var fe *inventory.FormatError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return nil, err
	}
	return records, nil
}

type saveOptions struct {
	atomic bool
}

// SaveOption customizes Save.
type SaveOption func(*saveOptions)

// WithAtomicWrite stages the new contents in a temporary file and renames it
// over path only after every record was written.
func WithAtomicWrite(enabled bool) SaveOption {
	return func(o *saveOptions) {
		o.atomic = enabled
	}
}

// Save truncates path and writes one line per record. Without
// WithAtomicWrite a failure part way through leaves a truncated file.
func Save(path string, records []inventory.Record, format Format, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.atomic {
		return saveAtomic(path, records, format)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open inventory %q for writing: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, records, format); err != nil {
		return fmt.Errorf("write inventory %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close inventory %q: %w", path, err)
	}
	return nil
}

func saveAtomic(path string, records []inventory.Record, format Format) error {
	w, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("open inventory %q for writing: %w", path, err)
	}
	defer w.RemoveIfNotClosed()

	if err := Encode(w, records, format); err != nil {
		return fmt.Errorf("write inventory %q: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("commit inventory %q: %w", path, err)
	}
	return nil
}

// File is an inventory.Backend bound to a single text file.
type File struct {
	path   string
	format Format
	atomic bool
	logger *slog.Logger
}

// Option configures a File.
type Option func(*File)

// WithFormat selects the line encoding.
func WithFormat(format Format) Option {
	return func(f *File) {
		f.format = format
	}
}

// WithAtomicSave enables temp-file-and-rename saves.
func WithAtomicSave(enabled bool) Option {
	return func(f *File) {
		f.atomic = enabled
	}
}

// WithLogger attaches a logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *File) {
		f.logger = logger
	}
}

// New returns a backend for path. The file is not touched until Bootstrap,
// Load, or Save is called.
func New(path string, opts ...Option) *File {
	f := &File{path: path, format: FormatPlain}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.NewComponentLogger(f.logger, "inventoryfile")
	return f
}

// Location returns the file path.
func (f *File) Location() string {
	return f.path
}

// Bootstrap creates the file when it is missing.
func (f *File) Bootstrap() error {
	created, err := EnsureExists(f.path)
	if err != nil {
		return err
	}
	if created {
		f.logger.Info("created empty inventory file", logging.String(logging.FieldPath, f.path))
	}
	return nil
}

// Load implements inventory.Backend.
func (f *File) Load(ctx context.Context) ([]inventory.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := Load(f.path, f.format)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("loaded inventory",
		logging.String(logging.FieldPath, f.path),
		logging.Int(logging.FieldRecordCount, len(records)))
	return records, nil
}

// Save implements inventory.Backend.
func (f *File) Save(ctx context.Context, records []inventory.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.format == FormatPlain {
		for _, rec := range records {
			if Ambiguous(rec) {
				f.logger.Warn("record contains the field delimiter and will not reload intact",
					logging.Int(logging.FieldRecordID, rec.ID),
					logging.String(logging.FieldPath, f.path),
					logging.String(logging.FieldErrorHint, "set inventory.format = \"quoted\" to preserve commas"))
			}
		}
	}
	if err := Save(f.path, records, f.format, WithAtomicWrite(f.atomic)); err != nil {
		return err
	}
	f.logger.Debug("saved inventory",
		logging.String(logging.FieldPath, f.path),
		logging.Int(logging.FieldRecordCount, len(records)),
		logging.Bool("atomic", f.atomic))
	return nil
}

// Backup copies the inventory file to dst after verifying the copy.
func (f *File) Backup(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.CopyFileVerified(f.path, dst); err != nil {
		return fmt.Errorf("back up %q: %w", f.path, err)
	}
	f.logger.Debug("backed up inventory", logging.String(logging.FieldPath, dst))
	return nil
}

var _ inventory.Backend = (*File)(nil)
