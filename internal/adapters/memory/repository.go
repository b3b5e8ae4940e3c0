package memory

import (
	"context"
	"sync"

	"github.com/staybook/backend/internal/domain/entities"
)

// Repository is a single-namespace in-memory keyed store for one entity
// kind. All operations are safe under concurrent access; reads return
// snapshots and never observe a partially-applied mutation. Entities are
// copied on the way in and out, so callers never share memory with the
// store and may mutate what they hold without taking a lock.
type Repository[T entities.Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewRepository creates an empty single-namespace repository.
func NewRepository[T entities.Entity]() *Repository[T] {
	return &Repository[T]{
		items: make(map[string]T),
	}
}

// Add inserts the entity under its id. An existing id is overwritten
// silently and keeps its original insertion position.
func (r *Repository[T]) Add(_ context.Context, entity T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = clone(entity)
}

// Get returns a copy of the entity for id, or false when absent.
func (r *Repository[T]) Get(_ context.Context, id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return clone(entity), true
}

// GetAll returns a snapshot of all stored entities in insertion order.
func (r *Repository[T]) GetAll(_ context.Context) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]T, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, clone(r.items[id]))
	}
	return all
}

// Update replaces the stored value and reports whether the id was found.
func (r *Repository[T]) Update(_ context.Context, entity T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, exists := r.items[id]; !exists {
		return false
	}
	r.items[id] = clone(entity)
	return true
}

// Delete removes the entry and reports whether something was removed.
// Identifiers are generated, never reused, so a deleted id stays gone.
func (r *Repository[T]) Delete(_ context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return false
	}
	delete(r.items, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// FindByAttribute scans in insertion order for the first entity whose named
// attribute equals value, or false when no entity matches.
func (r *Repository[T]) FindByAttribute(_ context.Context, attribute string, value any) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		entity := r.items[id]
		if got, ok := entity.Attribute(attribute); ok && got == value {
			return clone(entity), true
		}
	}

	var zero T
	return zero, false
}

// Len returns the number of stored entities.
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// clone narrows Entity.Clone back to the repository's element type.
func clone[T entities.Entity](entity T) T {
	return entity.Clone().(T)
}
