// Package storage provides blob storage for uploaded files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BlobStore persists named blobs under a fixed logical root.
type BlobStore interface {
	// Write persists the blob under name, replacing any existing blob
	// with the same name.
	Write(name string, r io.Reader) error
}

// DiskStore is a BlobStore backed by a local directory. Files written
// here are served by the HTTP layer under /static/.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Write persists the blob to disk. The destination file is closed on
// every exit path; a partially written file is removed on error.
func (s *DiskStore) Write(name string, r io.Reader) error {
	path := filepath.Join(s.dir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
