// Package storage implements the local blob store backing uploaded files.
// Blobs live flat in one directory under server-generated names; metadata is
// kept separately in the database.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type BlobStore struct {
	dir string
}

// NewBlobStore creates the upload directory if needed and returns a store
// rooted there.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &BlobStore{dir: dir}, nil
}

// GeneratedName builds the stored filename for an upload: the form field
// name, a nanosecond timestamp and the original file's extension.
func GeneratedName(fieldName, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d%s", fieldName, time.Now().UnixNano(), ext)
}

// Save writes the blob under a generated name and returns that name together
// with the number of bytes written.
func (s *BlobStore) Save(fieldName, originalName string, src io.Reader) (string, int64, error) {
	storedName := GeneratedName(fieldName, originalName)
	path := filepath.Join(s.dir, storedName)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, err
	}

	size, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(path)
		return "", 0, err
	}

	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", 0, err
	}

	return storedName, size, nil
}

// Open returns the blob for reading.
func (s *BlobStore) Open(storedName string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, storedName))
}

// Remove deletes the blob. It fails when the blob is absent; callers that
// treat a missing blob as drift depend on that.
func (s *BlobStore) Remove(storedName string) error {
	return os.Remove(filepath.Join(s.dir, storedName))
}

// Exists reports whether the blob is present on disk.
func (s *BlobStore) Exists(storedName string) bool {
	_, err := os.Stat(filepath.Join(s.dir, storedName))
	return err == nil
}

// Path returns the absolute location of a blob inside the store.
func (s *BlobStore) Path(storedName string) string {
	return filepath.Join(s.dir, storedName)
}
