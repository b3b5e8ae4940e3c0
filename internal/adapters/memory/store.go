package memory

import (
	"context"
	"sync"

	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
)

// Store is the multi-namespace in-memory store keyed by (kind, id). It is
// composed of one single-namespace repository per entity kind, held through
// the repositories.Repository port, so each kind partition carries its own
// lock.
type Store struct {
	mu    sync.Mutex
	kinds map[entities.Kind]repositories.Repository[entities.Entity]
}

// NewStore creates an empty multi-namespace store.
func NewStore() *Store {
	return &Store{
		kinds: make(map[entities.Kind]repositories.Repository[entities.Entity]),
	}
}

// Add inserts the entity under (kind, id) derived from the entity itself.
func (s *Store) Add(ctx context.Context, entity entities.Entity) {
	s.namespace(entity.EntityKind()).Add(ctx, entity)
}

// Get returns the entity for (id, kind), or false when absent.
func (s *Store) Get(ctx context.Context, id string, kind entities.Kind) (entities.Entity, bool) {
	return s.namespace(kind).Get(ctx, id)
}

// GetAll returns a snapshot of all entities of kind in insertion order.
func (s *Store) GetAll(ctx context.Context, kind entities.Kind) []entities.Entity {
	return s.namespace(kind).GetAll(ctx)
}

// Update replaces the stored value and reports whether it was found.
func (s *Store) Update(ctx context.Context, entity entities.Entity) bool {
	return s.namespace(entity.EntityKind()).Update(ctx, entity)
}

// Delete removes the entry and reports whether something was removed.
func (s *Store) Delete(ctx context.Context, id string, kind entities.Kind) bool {
	return s.namespace(kind).Delete(ctx, id)
}

// FindByAttribute scans a kind partition for the first entity whose named
// attribute equals value.
func (s *Store) FindByAttribute(ctx context.Context, kind entities.Kind, attribute string, value any) (entities.Entity, bool) {
	return s.namespace(kind).FindByAttribute(ctx, attribute, value)
}

// namespace returns the partition for kind, creating it on first use.
func (s *Store) namespace(kind entities.Kind) repositories.Repository[entities.Entity] {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.kinds[kind]
	if !ok {
		repo = NewRepository[entities.Entity]()
		s.kinds[kind] = repo
	}
	return repo
}
