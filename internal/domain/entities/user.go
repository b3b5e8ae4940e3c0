package entities

import (
	"strings"
	"time"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// User represents a registered account. PlaceIDs and ReviewIDs are
// back-references maintained by the facade; the user does not own the
// referenced entities.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	PlaceIDs  []string  `json:"-"`
	ReviewIDs []string  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser validates the fields and returns a new user with a generated id.
func NewUser(firstName, lastName, email string, isAdmin bool) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	created := now()
	return &User{
		ID:        newID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	IsAdmin   *bool   `json:"is_admin"`
}

// Apply merges the provided fields into the user, re-validating each changed
// field with the same rules as construction.
func (u *User) Apply(patch UserPatch) error {
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return err
		}
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.IsAdmin != nil {
		u.IsAdmin = *patch.IsAdmin
	}

	u.UpdatedAt = touched(u.UpdatedAt)
	return nil
}

// AddPlace records a back-reference to a place owned by this user.
func (u *User) AddPlace(placeID string) {
	u.PlaceIDs = append(u.PlaceIDs, placeID)
}

// AddReview records a back-reference to a review authored by this user.
func (u *User) AddReview(reviewID string) {
	u.ReviewIDs = append(u.ReviewIDs, reviewID)
}

// Clone returns a copy of the user sharing no memory with the receiver.
func (u *User) Clone() Entity {
	clone := *u
	clone.PlaceIDs = cloneIDs(u.PlaceIDs)
	clone.ReviewIDs = cloneIDs(u.ReviewIDs)
	return &clone
}

func (u *User) EntityID() string {
	return u.ID
}

func (u *User) EntityKind() Kind {
	return KindUser
}

func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "email":
		return u.Email, true
	case "is_admin":
		return u.IsAdmin, true
	default:
		return nil, false
	}
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.NewFieldValidationError("email", "invalid email address")
	}
	return nil
}
