// Package filestore persists uploaded bill documents on local disk. Stored
// names are the original filename prefixed with a second-resolution
// timestamp, which is what the rest of the system records as
// bill_filename.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var ErrNotFound = errors.New("file not found")

// Store is the contract for attachment storage backends.
type Store interface {
	Save(filename string, content io.Reader) (string, error)
	Open(storedName string) (io.ReadCloser, error)
}

// DiskStore writes attachments verbatim under a single local directory.
type DiskStore struct {
	dir string
	now func() time.Time
}

// NewDiskStore creates the content directory if needed and returns a
// ready-to-use store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir, now: time.Now}, nil
}

// Save writes the byte stream under a collision-resistant name and returns
// that name. The write is not atomic; a crash mid-write can leave a
// partial file behind.
func (s *DiskStore) Save(filename string, content io.Reader) (string, error) {
	storedName := fmt.Sprintf("%s_%s", s.now().Format("20060102_150405"), filepath.Base(filename))

	f, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return storedName, nil
}

// Open streams back the stored bytes unmodified. The name is flattened
// with filepath.Base so a crafted name cannot escape the content
// directory.
func (s *DiskStore) Open(storedName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}
