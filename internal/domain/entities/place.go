package entities

import (
	"time"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// Place represents a rentable property. OwnerID references an existing user;
// AmenityIDs holds an ordered set of amenity references and ReviewIDs an
// append-only list of review references, both in insertion order.
type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OwnerID     string    `json:"owner_id"`
	AmenityIDs  []string  `json:"amenities"`
	ReviewIDs   []string  `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPlace validates the fields and returns a new place with a generated id.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (*Place, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateLatitude(latitude); err != nil {
		return nil, err
	}
	if err := validateLongitude(longitude); err != nil {
		return nil, err
	}

	created := now()
	return &Place{
		ID:          newID(),
		Title:       title,
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
		AmenityIDs:  []string{},
		ReviewIDs:   []string{},
		CreatedAt:   created,
		UpdatedAt:   created,
	}, nil
}

// PlacePatch carries a partial update; nil fields are left untouched.
type PlacePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Apply merges the provided fields into the place, re-validating each changed
// field with the same rules as construction.
func (p *Place) Apply(patch PlacePatch) error {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Latitude != nil {
		if err := validateLatitude(*patch.Latitude); err != nil {
			return err
		}
	}
	if patch.Longitude != nil {
		if err := validateLongitude(*patch.Longitude); err != nil {
			return err
		}
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Latitude != nil {
		p.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = *patch.Longitude
	}

	p.UpdatedAt = touched(p.UpdatedAt)
	return nil
}

// AddAmenity associates an amenity with the place. Duplicates are ignored;
// it reports whether the id was added.
func (p *Place) AddAmenity(amenityID string) bool {
	for _, id := range p.AmenityIDs {
		if id == amenityID {
			return false
		}
	}
	p.AmenityIDs = append(p.AmenityIDs, amenityID)
	return true
}

// AddReview appends a review reference to the place.
func (p *Place) AddReview(reviewID string) {
	p.ReviewIDs = append(p.ReviewIDs, reviewID)
}

// Clone returns a copy of the place sharing no memory with the receiver.
func (p *Place) Clone() Entity {
	clone := *p
	clone.AmenityIDs = cloneIDs(p.AmenityIDs)
	clone.ReviewIDs = cloneIDs(p.ReviewIDs)
	return &clone
}

func (p *Place) EntityID() string {
	return p.ID
}

func (p *Place) EntityKind() Kind {
	return KindPlace
}

func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "description":
		return p.Description, true
	case "price":
		return p.Price, true
	case "latitude":
		return p.Latitude, true
	case "longitude":
		return p.Longitude, true
	case "owner_id":
		return p.OwnerID, true
	default:
		return nil, false
	}
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.NewFieldValidationError("title", "must not be empty")
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return apperrors.NewFieldValidationError("description", "must not be empty")
	}
	return nil
}

func validatePrice(price float64) error {
	if price <= 0 {
		return apperrors.NewFieldValidationError("price", "must be greater than 0")
	}
	return nil
}

func validateLatitude(latitude float64) error {
	if latitude < -90 || latitude > 90 {
		return apperrors.NewFieldValidationError("latitude", "must be between -90 and 90")
	}
	return nil
}

func validateLongitude(longitude float64) error {
	if longitude < -180 || longitude > 180 {
		return apperrors.NewFieldValidationError("longitude", "must be between -180 and 180")
	}
	return nil
}
