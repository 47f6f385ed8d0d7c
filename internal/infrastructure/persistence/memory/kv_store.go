// Package memory provides an in-process key-value store for ephemeral runs
// and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/repository"
)

// KeyValueStore keeps frame state in a map for the life of the process.
type KeyValueStore struct {
	mu      sync.RWMutex
	entries map[string]entity.StoredEntry
	now     func() time.Time
}

var _ repository.KeyValueStore = (*KeyValueStore)(nil)

// NewKeyValueStore creates an empty store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		entries: make(map[string]entity.StoredEntry),
		now:     time.Now,
	}
}

func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e.Value, ok, nil
}

func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entity.StoredEntry{Key: key, Value: value, UpdatedAt: s.now()}
	return nil
}

func (s *KeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *KeyValueStore) List(_ context.Context, prefix string) ([]entity.StoredEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.StoredEntry, 0, len(s.entries))
	for k, e := range s.entries {
		if strings.HasPrefix(k, prefix) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Len returns the number of stored entries.
func (s *KeyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
