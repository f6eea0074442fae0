package merchant

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

// FileStore persists the merchant map as a flat JSON object in a local
// file: normalized merchant key → category label, pretty-printed, no
// envelope. A missing file reads as an empty map. Writes are serialized
// in-process with a mutex.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll reads the full mapping from disk.
func (s *FileStore) LoadAll(_ context.Context) (Map, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Map{}, nil
		}
		return nil, fmt.Errorf("reading merchant map: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing merchant map: %w", err)
	}

	m := make(Map, len(raw))
	for k, v := range raw {
		m[k] = category.Label(v)
	}
	return m, nil
}

// SaveAll overwrites the stored mapping with m.
func (s *FileStore) SaveAll(_ context.Context, m Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(m)
}

// Upsert sets the label for a single key, leaving all others untouched.
func (s *FileStore) Upsert(ctx context.Context, key string, label category.Label) error {
	if key == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	m[key] = label
	return s.write(m)
}

func (s *FileStore) write(m Map) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating merchant map directory: %w", err)
		}
	}

	raw := make(map[string]string, len(m))
	for k, v := range m {
		raw[k] = string(v)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding merchant map: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing merchant map: %w", err)
	}
	return nil
}
