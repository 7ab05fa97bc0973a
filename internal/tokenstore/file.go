package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the token record as a single JSON document on local
// disk. Writes go through a temp file and rename so a crash mid-write leaves
// either the old record or the new one, never a partial file. A mutex keeps
// in-process Load/Save pairs from interleaving.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore writing to the given path. The parent
// directory is created on first Save if it does not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted record. A missing file or one that fails to parse
// yields (nil, nil): the token is simply absent and the caller
// re-authenticates.
func (s *FileStore) Load(_ context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}

	if rec.AccessToken == "" {
		return nil, nil
	}

	rec.Expiry = rec.Expiry.UTC()
	return &rec, nil
}

// Save atomically replaces the persisted record.
func (s *FileStore) Save(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	saved := *r
	saved.Expiry = saved.Expiry.UTC()

	data, err := json.Marshal(&saved)
	if err != nil {
		return fmt.Errorf("encoding token record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".token-*")
	if err != nil {
		return fmt.Errorf("creating temp token file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing token record: %w", err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("setting token file mode: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing token file: %w", err)
	}

	return nil
}
