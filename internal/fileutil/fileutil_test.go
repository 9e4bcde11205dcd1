package fileutil

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "CDInventory.txt")
	dst := BackupPath(src)
	content := []byte("1,Blue,Joni Mitchell\n")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}
	if dst != src+".bak" {
		t.Fatalf("unexpected backup path %q", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerifiedReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "CDInventory.txt")
	dst := BackupPath(src)
	if err := os.WriteFile(dst, []byte("old backup with more bytes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("2,Low,David Bowie\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "2,Low,David Bowie\n" {
		t.Fatalf("expected destination replaced, got %q", got)
	}
}

func TestCopyFileVerifiedEmptyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty.txt")
	dst := filepath.Join(dir, "copy.txt")
	if err := os.WriteFile(src, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty copy, got %d bytes", info.Size())
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nope.txt")
	dst := BackupPath(src)
	if err := CopyFileVerified(src, dst); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("destination must not be created for a missing source")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no temp files left behind, found %d entries", len(entries))
	}
}

func TestVerifyCopyDetectsMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.txt")
	if err := os.WriteFile(path, []byte("1,Blue,Joni Mitchell\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := sha256.Sum256([]byte("1,Blue,Joni Mitchell\n"))
	other := sha256.Sum256([]byte("2,Low,David Bowie\n"))

	cases := []struct {
		name    string
		size    int64
		sum     []byte
		wantErr string
	}{
		{name: "match", size: 21, sum: want[:]},
		{name: "size", size: 20, sum: want[:], wantErr: "size mismatch"},
		{name: "hash", size: 21, sum: other[:], wantErr: "hash mismatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := verifyCopy(path, tc.size, tc.sum)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("verifyCopy: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q error, got %v", tc.wantErr, err)
			}
		})
	}
}
