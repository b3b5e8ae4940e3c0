package repositories

import (
	"context"

	"github.com/staybook/backend/internal/domain/entities"
)

// Store defines the multi-namespace store contract: one store backing
// several entity kinds, keyed by (kind, id). It is the store of record;
// the single-namespace Repository is the per-kind building block.
type Store interface {
	// Add inserts the entity under (kind, id) derived from the entity itself.
	Add(ctx context.Context, entity entities.Entity)

	// Get returns the entity for (id, kind), or false when absent.
	Get(ctx context.Context, id string, kind entities.Kind) (entities.Entity, bool)

	// GetAll returns a snapshot of all entities of kind in insertion order.
	GetAll(ctx context.Context, kind entities.Kind) []entities.Entity

	// Update replaces the stored value and reports whether it was found.
	Update(ctx context.Context, entity entities.Entity) bool

	// Delete removes the entry and reports whether something was removed.
	Delete(ctx context.Context, id string, kind entities.Kind) bool

	// FindByAttribute scans a kind for the first entity whose named
	// attribute equals value.
	FindByAttribute(ctx context.Context, kind entities.Kind, attribute string, value any) (entities.Entity, bool)
}
