package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps each document as a pretty-printed JSON file under a data
// directory. This is the default backend.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed document store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Get retrieves a document. A missing file is not an error.
func (s *FileStore) Get(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return data, nil
}

// Put fully overwrites a document. The write goes through a temp file and
// rename so a concurrent reader never sees a partial document.
func (s *FileStore) Put(_ context.Context, name string, data []byte) error {
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("failed to replace document %s: %w", name, err)
	}
	return nil
}

// Quarantine copies a corrupted document aside with a timestamp suffix so
// the bytes stay available for recovery.
func (s *FileStore) Quarantine(name string) error {
	src := s.path(name)
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	backup := fmt.Sprintf("%s.backup.%d", src, time.Now().UnixMilli())
	return os.WriteFile(backup, data, 0o644)
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
var _ Quarantiner = (*FileStore)(nil)
