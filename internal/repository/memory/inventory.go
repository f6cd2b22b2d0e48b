package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

// InventoryStore is the in-memory implementation of repository.InventoryStore.
// It is safe for concurrent use: reads are served from deep copies taken under
// a read lock, writes replace whole records under the write lock.
type InventoryStore struct {
	mu     sync.RWMutex
	titles map[string]*model.Title
}

// NewInventoryStore creates an empty inventory store.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{titles: make(map[string]*model.Title)}
}

var _ repository.InventoryStore = (*InventoryStore)(nil)

// Get returns a copy of the title, or repository.ErrNotFound.
func (s *InventoryStore) Get(_ context.Context, id string) (*model.Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.titles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.Clone(), nil
}

// List returns copies of all titles, ordered by title name ascending for
// catalog display.
func (s *InventoryStore) List(_ context.Context) ([]model.Title, error) {
	s.mu.RLock()
	out := make([]model.Title, 0, len(s.titles))
	for _, t := range s.titles {
		out = append(out, *t.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Title), strings.ToLower(out[j].Title)
		if a == b {
			return out[i].ID < out[j].ID
		}
		return a < b
	})
	return out, nil
}

// Upsert stores a copy of the given title under its ID. It never fails.
func (s *InventoryStore) Upsert(_ context.Context, t *model.Title) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.titles[t.ID] = t.Clone()
	return nil
}

// Remove deletes the title, or returns repository.ErrNotFound.
func (s *InventoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.titles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.titles, id)
	return nil
}

// ReplaceAll swaps the whole title set, copying each record on the way in.
func (s *InventoryStore) ReplaceAll(_ context.Context, titles []model.Title) error {
	next := make(map[string]*model.Title, len(titles))
	for i := range titles {
		next[titles[i].ID] = titles[i].Clone()
	}

	s.mu.Lock()
	s.titles = next
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored titles.
func (s *InventoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.titles)
}
