package entities

import (
	"time"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// Amenity represents a feature a place can offer (wifi, pool, parking).
type Amenity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAmenity validates the name and returns a new amenity with a generated id.
func NewAmenity(name string) (*Amenity, error) {
	if err := validateAmenityName(name); err != nil {
		return nil, err
	}

	created := now()
	return &Amenity{
		ID:        newID(),
		Name:      name,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

// AmenityPatch carries a partial update; nil fields are left untouched.
type AmenityPatch struct {
	Name *string `json:"name"`
}

// Apply merges the provided fields into the amenity.
func (a *Amenity) Apply(patch AmenityPatch) error {
	if patch.Name != nil {
		if err := validateAmenityName(*patch.Name); err != nil {
			return err
		}
		a.Name = *patch.Name
	}

	a.UpdatedAt = touched(a.UpdatedAt)
	return nil
}

// Clone returns a copy of the amenity.
func (a *Amenity) Clone() Entity {
	clone := *a
	return &clone
}

func (a *Amenity) EntityID() string {
	return a.ID
}

func (a *Amenity) EntityKind() Kind {
	return KindAmenity
}

func (a *Amenity) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "name":
		return a.Name, true
	default:
		return nil, false
	}
}

func validateAmenityName(name string) error {
	if name == "" {
		return apperrors.NewFieldValidationError("name", "must not be empty")
	}
	return nil
}
