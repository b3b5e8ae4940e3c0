package entities

import (
	"time"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// Review represents a rating left by a user on a place. PlaceID and UserID
// reference existing entities resolved through the store, never live links.
type Review struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	PlaceID   string    `json:"place_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReview validates the fields and returns a new review with a generated id.
func NewReview(text string, rating int, placeID, userID string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	created := now()
	return &Review{
		ID:        newID(),
		Text:      text,
		Rating:    rating,
		PlaceID:   placeID,
		UserID:    userID,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

// ReviewPatch carries a partial update; nil fields are left untouched.
type ReviewPatch struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// Apply merges the provided fields into the review, re-validating each
// changed field with the same rules as construction.
func (r *Review) Apply(patch ReviewPatch) error {
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return err
		}
		r.Rating = *patch.Rating
	}
	if patch.Text != nil {
		r.Text = *patch.Text
	}

	r.UpdatedAt = touched(r.UpdatedAt)
	return nil
}

// Clone returns a copy of the review.
func (r *Review) Clone() Entity {
	clone := *r
	return &clone
}

func (r *Review) EntityID() string {
	return r.ID
}

func (r *Review) EntityKind() Kind {
	return KindReview
}

func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "text":
		return r.Text, true
	case "rating":
		return r.Rating, true
	case "place_id":
		return r.PlaceID, true
	case "user_id":
		return r.UserID, true
	default:
		return nil, false
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewFieldValidationError("rating", "must be between 1 and 5")
	}
	return nil
}
