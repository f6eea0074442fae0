package merchant

import (
	"context"
	"sync"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

// MockStore is an in-memory Store for testing. It counts calls and can be
// primed to fail.
type MockStore struct {
	mu       sync.Mutex
	Mappings Map

	// Error flags for testing degraded-storage behavior
	LoadAllError error
	SaveAllError error
	UpsertError  error

	// Call counters
	LoadAllCalls int
	SaveAllCalls int
	UpsertCalls  int
}

// NewMockStore creates a MockStore seeded with the given mappings.
func NewMockStore(seed Map) *MockStore {
	if seed == nil {
		seed = Map{}
	}
	return &MockStore{Mappings: seed.Clone()}
}

// LoadAll returns a copy of the mock mappings.
func (m *MockStore) LoadAll(_ context.Context) (Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadAllCalls++
	if m.LoadAllError != nil {
		return nil, m.LoadAllError
	}
	return m.Mappings.Clone(), nil
}

// SaveAll replaces the mock mappings.
func (m *MockStore) SaveAll(_ context.Context, mapping Map) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveAllCalls++
	if m.SaveAllError != nil {
		return m.SaveAllError
	}
	m.Mappings = mapping.Clone()
	return nil
}

// Upsert sets a single key in the mock mappings.
func (m *MockStore) Upsert(_ context.Context, key string, label category.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	if m.UpsertError != nil {
		return m.UpsertError
	}
	if key == "" {
		return nil
	}
	m.Mappings[key] = label
	return nil
}

// Get returns the stored label for key, if any.
func (m *MockStore) Get(key string) (category.Label, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	label, ok := m.Mappings[key]
	return label, ok
}
