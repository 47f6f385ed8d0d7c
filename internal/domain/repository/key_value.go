package repository

import (
	"context"

	"github.com/bnema/dragframe/internal/domain/entity"
)

// KeyValueStore is the persistence medium for frame state: opaque string
// values addressed by string keys.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set creates or replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every entry whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]entity.StoredEntry, error)
}
