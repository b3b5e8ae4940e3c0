package entities

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies an entity namespace in the store.
type Kind string

const (
	KindUser    Kind = "User"
	KindPlace   Kind = "Place"
	KindReview  Kind = "Review"
	KindAmenity Kind = "Amenity"
)

// Entity is the contract every stored record satisfies. Attribute exposes
// named field values for attribute lookups without reflection. Clone returns
// a copy sharing no memory with the receiver, so the store can hand out
// values that are safe to mutate.
type Entity interface {
	EntityID() string
	EntityKind() Kind
	Attribute(name string) (any, bool)
	Clone() Entity
}

// cloneIDs copies an id list. Nil-ness is preserved so a clone compares
// equal to its source and an empty list keeps rendering as [] in JSON.
func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	return append(make([]string, 0, len(ids)), ids...)
}

// newID generates a collision-resistant identifier for a new entity.
func newID() string {
	return uuid.New().String()
}

func now() time.Time {
	return time.Now().UTC()
}

// touched returns a timestamp strictly after prev, so updated_at always
// advances even under a coarse clock.
func touched(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Nanosecond)
	}
	return t
}
