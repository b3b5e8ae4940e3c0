package repositories

import (
	"context"

	"github.com/staybook/backend/internal/domain/entities"
)

// Repository defines the single-namespace store contract: a keyed store
// holding one entity kind. Absence is always reported as a false second
// return, never as an error.
type Repository[T entities.Entity] interface {
	// Add inserts the entity under its id, overwriting silently if the id
	// already exists. Uniqueness checks are the facade's job.
	Add(ctx context.Context, entity T)

	// Get returns the entity for id, or false when absent.
	Get(ctx context.Context, id string) (T, bool)

	// GetAll returns a snapshot of all stored entities in insertion order.
	GetAll(ctx context.Context) []T

	// Update replaces the stored value and reports whether the id was found.
	Update(ctx context.Context, entity T) bool

	// Delete removes the entry and reports whether something was removed.
	Delete(ctx context.Context, id string) bool

	// FindByAttribute scans for the first entity whose named attribute
	// equals value, or false when no entity matches.
	FindByAttribute(ctx context.Context, attribute string, value any) (T, bool)
}
