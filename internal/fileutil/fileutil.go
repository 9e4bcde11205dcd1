// Package fileutil copies inventory files with integrity verification.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/kjk/common/atomicfile"
)

// BackupSuffix is appended to a file name to form its backup path.
const BackupSuffix = ".bak"

// BackupPath returns the backup location for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CopyFileVerified streams src to dst and then re-reads dst, checking its
// size and SHA256 against the source. dst is replaced atomically, so a failed
// copy leaves an earlier file at dst intact. A copy that commits but fails
// verification is removed.
func CopyFileVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := atomicfile.New(dst)
	if err != nil {
		return err
	}
	defer out.RemoveIfNotClosed()

	srcHasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := verifyCopy(dst, written, srcHasher.Sum(nil)); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

func verifyCopy(path string, size int64, sum []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open copy: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return fmt.Errorf("read copy: %w", err)
	}
	if n != size {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", size, n)
	}
	if !bytes.Equal(hasher.Sum(nil), sum) {
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
