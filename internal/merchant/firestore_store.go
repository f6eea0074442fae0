package merchant

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
)

// categoryField is the single field each merchant document holds.
const categoryField = "category"

// FirestoreStore persists the merchant map in a Firestore collection:
// one document per normalized merchant key, each holding a single
// category field. The client is injected at construction time and shared
// for the process lifetime.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore creates a FirestoreStore using the given client and
// collection name.
func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection}
}

// LoadAll streams the full collection into a Map.
func (s *FirestoreStore) LoadAll(ctx context.Context) (Map, error) {
	m := Map{}

	iter := s.client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("streaming merchant map collection: %w", err)
		}

		label, _ := doc.Data()[categoryField].(string)
		m[doc.Ref.ID] = category.Label(label)
	}

	return m, nil
}

// SaveAll replaces the entire collection with m: existing documents are
// deleted, then one document per entry is written. Partial visibility
// during the rewrite is acceptable; this path only runs on stale-entry
// eviction, never under load.
func (s *FirestoreStore) SaveAll(ctx context.Context, m Map) error {
	col := s.client.Collection(s.collection)

	iter := col.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("listing merchant map for rewrite: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("deleting merchant map document %q: %w", doc.Ref.ID, err)
		}
	}

	for key, label := range m {
		if _, err := col.Doc(key).Set(ctx, map[string]interface{}{categoryField: string(label)}); err != nil {
			return fmt.Errorf("writing merchant map document %q: %w", key, err)
		}
	}
	return nil
}

// Upsert writes a single merchant document.
func (s *FirestoreStore) Upsert(ctx context.Context, key string, label category.Label) error {
	if key == "" {
		return nil
	}

	_, err := s.client.Collection(s.collection).Doc(key).Set(ctx, map[string]interface{}{
		categoryField: string(label),
	})
	if err != nil {
		return fmt.Errorf("upserting merchant map document %q: %w", key, err)
	}
	return nil
}
