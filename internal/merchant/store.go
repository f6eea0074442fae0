package merchant

import (
	"context"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

// Map is the learned merchant→category mapping. Keys are normalized
// merchant names; values are members of the category enumeration.
type Map map[string]category.Label

// Clone returns a shallow copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store is the persistence contract for the merchant map. Implementations
// are selected once at startup; callers never branch on the backend.
type Store interface {
	// LoadAll returns the complete current mapping.
	LoadAll(ctx context.Context) (Map, error)

	// SaveAll atomically replaces the stored mapping with m. Implementations
	// may delete-then-rewrite; this path is not used under load.
	SaveAll(ctx context.Context, m Map) error

	// Upsert sets or overwrites the mapping for a single key without
	// touching others. An empty key is a no-op.
	Upsert(ctx context.Context, key string, label category.Label) error
}
