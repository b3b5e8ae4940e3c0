package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/providers"
	"github.com/staybook/backend/internal/domain/repositories"
	apperrors "github.com/staybook/backend/pkg/errors"
)

// Facade is the single business entry point above the store. It owns entity
// construction, cross-entity referential integrity and partial-update rules;
// the HTTP layer only maps its results to responses.
//
// Construct one instance at startup and share it; there is no package-level
// singleton.
type Facade struct {
	store    repositories.Store
	eventBus providers.EventBus
}

// NewFacade creates a facade over the given store. eventBus may be nil, in
// which case lifecycle events are not published.
func NewFacade(store repositories.Store, eventBus providers.EventBus) *Facade {
	return &Facade{
		store:    store,
		eventBus: eventBus,
	}
}

// CreateUserInput holds the fields accepted when registering a user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// CreateUser validates and stores a new user.
//
// Email uniqueness is not enforced here: the HTTP layer is expected to check
// via GetUserByEmail before calling. A direct caller skipping that check can
// create duplicate emails.
func (f *Facade) CreateUser(ctx context.Context, in CreateUserInput) (*entities.User, error) {
	user, err := entities.NewUser(in.FirstName, in.LastName, in.Email, in.IsAdmin)
	if err != nil {
		return nil, err
	}

	f.store.Add(ctx, user)
	f.publish(ctx, entities.KindUser, user.ID, entities.EventActionCreated)
	return user, nil
}

// GetUser returns the user for id, or false when absent.
func (f *Facade) GetUser(ctx context.Context, id string) (*entities.User, bool) {
	entity, ok := f.store.Get(ctx, id, entities.KindUser)
	if !ok {
		return nil, false
	}
	return entity.(*entities.User), true
}

// GetUserByEmail returns the first user with the given email, or false.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*entities.User, bool) {
	entity, ok := f.store.FindByAttribute(ctx, entities.KindUser, "email", email)
	if !ok {
		return nil, false
	}
	return entity.(*entities.User), true
}

// GetAllUsers returns all users in insertion order.
func (f *Facade) GetAllUsers(ctx context.Context) []*entities.User {
	return collect[*entities.User](f.store.GetAll(ctx, entities.KindUser))
}

// UpdateUser applies a partial update to the user.
func (f *Facade) UpdateUser(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	user, ok := f.GetUser(ctx, id)
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err := user.Apply(patch); err != nil {
		return nil, err
	}

	f.store.Update(ctx, user)
	f.publish(ctx, entities.KindUser, user.ID, entities.EventActionUpdated)
	return user, nil
}

// CreatePlaceInput holds the fields accepted when listing a place.
type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
}

// CreatePlace resolves the owner, then validates and stores a new place.
// A missing owner is a reference error and nothing is stored.
func (f *Facade) CreatePlace(ctx context.Context, in CreatePlaceInput) (*entities.Place, error) {
	owner, ok := f.GetUser(ctx, in.OwnerID)
	if !ok {
		return nil, apperrors.NewReferenceError("owner not found")
	}

	place, err := entities.NewPlace(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, owner.ID)
	if err != nil {
		return nil, err
	}

	f.store.Add(ctx, place)

	// The owner's back-references changed too, so cached user responses
	// get their own invalidation event.
	owner.AddPlace(place.ID)
	f.store.Update(ctx, owner)
	f.publish(ctx, entities.KindUser, owner.ID, entities.EventActionUpdated)

	f.publish(ctx, entities.KindPlace, place.ID, entities.EventActionCreated)
	return place, nil
}

// GetPlace returns the place for id, or false when absent.
func (f *Facade) GetPlace(ctx context.Context, id string) (*entities.Place, bool) {
	entity, ok := f.store.Get(ctx, id, entities.KindPlace)
	if !ok {
		return nil, false
	}
	return entity.(*entities.Place), true
}

// GetAllPlaces returns all places in insertion order.
func (f *Facade) GetAllPlaces(ctx context.Context) []*entities.Place {
	return collect[*entities.Place](f.store.GetAll(ctx, entities.KindPlace))
}

// UpdatePlace applies a partial update to the place.
func (f *Facade) UpdatePlace(ctx context.Context, id string, patch entities.PlacePatch) (*entities.Place, error) {
	place, ok := f.GetPlace(ctx, id)
	if !ok {
		return nil, apperrors.NewNotFoundError("place not found")
	}
	if err := place.Apply(patch); err != nil {
		return nil, err
	}

	f.store.Update(ctx, place)
	f.publish(ctx, entities.KindPlace, place.ID, entities.EventActionUpdated)
	return place, nil
}

// AddPlaceAmenity associates an existing amenity with an existing place.
// Duplicate associations are ignored.
func (f *Facade) AddPlaceAmenity(ctx context.Context, placeID, amenityID string) (*entities.Place, error) {
	place, ok := f.GetPlace(ctx, placeID)
	if !ok {
		return nil, apperrors.NewNotFoundError("place not found")
	}
	if _, ok := f.GetAmenity(ctx, amenityID); !ok {
		return nil, apperrors.NewReferenceError("amenity not found")
	}

	if place.AddAmenity(amenityID) {
		f.store.Update(ctx, place)
		f.publish(ctx, entities.KindPlace, place.ID, entities.EventActionUpdated)
	}
	return place, nil
}

// CreateReviewInput holds the fields accepted when reviewing a place.
type CreateReviewInput struct {
	Text    string
	Rating  int
	PlaceID string
	UserID  string
}

// CreateReview resolves both the place and the author, then validates and
// stores a new review. Either reference missing is a reference error and
// nothing is stored.
func (f *Facade) CreateReview(ctx context.Context, in CreateReviewInput) (*entities.Review, error) {
	place, ok := f.GetPlace(ctx, in.PlaceID)
	if !ok {
		return nil, apperrors.NewReferenceError("place not found")
	}
	user, ok := f.GetUser(ctx, in.UserID)
	if !ok {
		return nil, apperrors.NewReferenceError("user not found")
	}

	review, err := entities.NewReview(in.Text, in.Rating, place.ID, user.ID)
	if err != nil {
		return nil, err
	}

	f.store.Add(ctx, review)

	// Place and author back-references changed as well; their cached
	// responses carry the review lists, so each gets its own event.
	place.AddReview(review.ID)
	f.store.Update(ctx, place)
	f.publish(ctx, entities.KindPlace, place.ID, entities.EventActionUpdated)
	user.AddReview(review.ID)
	f.store.Update(ctx, user)
	f.publish(ctx, entities.KindUser, user.ID, entities.EventActionUpdated)

	f.publish(ctx, entities.KindReview, review.ID, entities.EventActionCreated)
	return review, nil
}

// GetReview returns the review for id, or false when absent.
func (f *Facade) GetReview(ctx context.Context, id string) (*entities.Review, bool) {
	entity, ok := f.store.Get(ctx, id, entities.KindReview)
	if !ok {
		return nil, false
	}
	return entity.(*entities.Review), true
}

// GetAllReviews returns all reviews in insertion order.
func (f *Facade) GetAllReviews(ctx context.Context) []*entities.Review {
	return collect[*entities.Review](f.store.GetAll(ctx, entities.KindReview))
}

// GetReviewsByPlace returns the reviews whose place id matches, in store
// iteration order.
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) []*entities.Review {
	all := f.GetAllReviews(ctx)
	matched := make([]*entities.Review, 0, len(all))
	for _, review := range all {
		if review.PlaceID == placeID {
			matched = append(matched, review)
		}
	}
	return matched
}

// UpdateReview applies a partial update to the review.
func (f *Facade) UpdateReview(ctx context.Context, id string, patch entities.ReviewPatch) (*entities.Review, error) {
	review, ok := f.GetReview(ctx, id)
	if !ok {
		return nil, apperrors.NewNotFoundError("review not found")
	}
	if err := review.Apply(patch); err != nil {
		return nil, err
	}

	f.store.Update(ctx, review)
	f.publish(ctx, entities.KindReview, review.ID, entities.EventActionUpdated)
	return review, nil
}

// DeleteReview removes the review and reports whether it existed. A missing
// review reports failure without side effects.
func (f *Facade) DeleteReview(ctx context.Context, id string) bool {
	if _, ok := f.GetReview(ctx, id); !ok {
		return false
	}

	f.store.Delete(ctx, id, entities.KindReview)
	f.publish(ctx, entities.KindReview, id, entities.EventActionDeleted)
	return true
}

// CreateAmenityInput holds the fields accepted when creating an amenity.
type CreateAmenityInput struct {
	Name string
}

// CreateAmenity validates and stores a new amenity. No cross-references.
func (f *Facade) CreateAmenity(ctx context.Context, in CreateAmenityInput) (*entities.Amenity, error) {
	amenity, err := entities.NewAmenity(in.Name)
	if err != nil {
		return nil, err
	}

	f.store.Add(ctx, amenity)
	f.publish(ctx, entities.KindAmenity, amenity.ID, entities.EventActionCreated)
	return amenity, nil
}

// GetAmenity returns the amenity for id, or false when absent.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*entities.Amenity, bool) {
	entity, ok := f.store.Get(ctx, id, entities.KindAmenity)
	if !ok {
		return nil, false
	}
	return entity.(*entities.Amenity), true
}

// GetAllAmenities returns all amenities in insertion order.
func (f *Facade) GetAllAmenities(ctx context.Context) []*entities.Amenity {
	return collect[*entities.Amenity](f.store.GetAll(ctx, entities.KindAmenity))
}

// UpdateAmenity applies a partial update to the amenity.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, patch entities.AmenityPatch) (*entities.Amenity, error) {
	amenity, ok := f.GetAmenity(ctx, id)
	if !ok {
		return nil, apperrors.NewNotFoundError("amenity not found")
	}
	if err := amenity.Apply(patch); err != nil {
		return nil, err
	}

	f.store.Update(ctx, amenity)
	f.publish(ctx, entities.KindAmenity, amenity.ID, entities.EventActionUpdated)
	return amenity, nil
}

// publish emits a lifecycle event, best effort.
func (f *Facade) publish(ctx context.Context, kind entities.Kind, entityID string, action entities.EventAction) {
	if f.eventBus == nil {
		return
	}

	event := entities.NewEvent(kind, entityID, action)
	if err := f.eventBus.Publish(ctx, providers.EventChannelEntityUpdates, event); err != nil {
		log.Warn().Err(err).
			Str("kind", string(kind)).
			Str("entity_id", entityID).
			Str("action", string(action)).
			Msg("failed to publish entity event")
	}
}

// collect narrows a kind partition snapshot to its concrete type.
func collect[T entities.Entity](snapshot []entities.Entity) []T {
	typed := make([]T, 0, len(snapshot))
	for _, entity := range snapshot {
		typed = append(typed, entity.(T))
	}
	return typed
}
