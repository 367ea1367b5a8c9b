package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultFileName is the document FileStore keeps under its directory.
const DefaultFileName = "transposit-storage.json"

var _ Store = (*FileStore)(nil)

// FileStore persists every key in a single JSON document on disk. Writes go
// through a temp file and a rename so a crash never leaves half a document.
// Two processes sharing the same file are not coordinated: the last writer wins.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by dir/DefaultFileName. The directory is
// created on first write.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("storage filestore: directory is required")
	}
	return &FileStore{path: filepath.Join(dir, DefaultFileName)}, nil
}

// Path returns the location of the backing document.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage filestore: key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("storage filestore: key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Remove(key string) error {
	if key == "" {
		return fmt.Errorf("storage filestore: key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage filestore: read failed: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("storage filestore: decode %s failed: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage filestore: create dir failed: %w", err)
	}

	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage filestore: encode failed: %w", err)
	}

	tmp := s.path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("storage filestore: write temp file failed: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage filestore: replace %s failed: %w", s.path, err)
	}
	return nil
}
