package services_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/backend/internal/adapters/memory"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
	apperrors "github.com/staybook/backend/pkg/errors"
)

func newFacade() *services.Facade {
	return services.NewFacade(memory.NewStore(), nil)
}

func createUser(t *testing.T, f *services.Facade, email string) *entities.User {
	t.Helper()
	user, err := f.CreateUser(context.Background(), services.CreateUserInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
	})
	require.NoError(t, err)
	return user
}

func createPlace(t *testing.T, f *services.Facade, ownerID string) *entities.Place {
	t.Helper()
	place, err := f.CreatePlace(context.Background(), services.CreatePlaceInput{
		Title:       "Loft",
		Description: "Bright loft downtown",
		Price:       120,
		Latitude:    48.85,
		Longitude:   2.35,
		OwnerID:     ownerID,
	})
	require.NoError(t, err)
	return place
}

func TestFacade_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	user := createUser(t, f, "ada@example.com")

	got, ok := f.GetUser(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, user.Email, got.Email)

	byEmail, ok := f.GetUserByEmail(ctx, "ada@example.com")
	require.True(t, ok)
	assert.Equal(t, user.ID, byEmail.ID)

	_, ok = f.GetUserByEmail(ctx, "nobody@example.com")
	assert.False(t, ok)

	assert.Len(t, f.GetAllUsers(ctx), 1)
}

func TestFacade_CreateUserDuplicateEmailAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	first := createUser(t, f, "same@example.com")
	second := createUser(t, f, "same@example.com")
	assert.NotEqual(t, first.ID, second.ID)

	// FindByAttribute returns the earliest match in insertion order.
	got, ok := f.GetUserByEmail(ctx, "same@example.com")
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
}

func TestFacade_UpdateUserPartial(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	user := createUser(t, f, "ada@example.com")

	email := "countess@example.com"
	updated, err := f.UpdateUser(ctx, user.ID, entities.UserPatch{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "countess@example.com", updated.Email)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestFacade_UpdateUserMissing(t *testing.T) {
	f := newFacade()

	email := "x@example.com"
	_, err := f.UpdateUser(context.Background(), "missing", entities.UserPatch{Email: &email})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFacade_CreatePlaceMissingOwner(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	_, err := f.CreatePlace(ctx, services.CreatePlaceInput{
		Title:       "Loft",
		Description: "desc",
		Price:       10,
		OwnerID:     "nonexistent",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsReference(err))
	assert.Empty(t, f.GetAllPlaces(ctx))
}

func TestFacade_CreatePlaceLinksOwner(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	owner := createUser(t, f, "ada@example.com")
	place := createPlace(t, f, owner.ID)

	assert.Equal(t, owner.ID, place.OwnerID)

	got, ok := f.GetUser(ctx, owner.ID)
	require.True(t, ok)
	assert.Contains(t, got.PlaceIDs, place.ID)
}

func TestFacade_AddPlaceAmenity(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	owner := createUser(t, f, "ada@example.com")
	place := createPlace(t, f, owner.ID)

	amenity, err := f.CreateAmenity(ctx, services.CreateAmenityInput{Name: "Wi-Fi"})
	require.NoError(t, err)

	updated, err := f.AddPlaceAmenity(ctx, place.ID, amenity.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{amenity.ID}, updated.AmenityIDs)

	// Repeated association is a no-op, not an error.
	updated, err = f.AddPlaceAmenity(ctx, place.ID, amenity.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{amenity.ID}, updated.AmenityIDs)

	_, err = f.AddPlaceAmenity(ctx, "missing", amenity.ID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.AddPlaceAmenity(ctx, place.ID, "missing")
	assert.True(t, apperrors.IsReference(err))
}

func TestFacade_CreateReviewMissingReferences(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	owner := createUser(t, f, "ada@example.com")
	place := createPlace(t, f, owner.ID)

	_, err := f.CreateReview(ctx, services.CreateReviewInput{
		Text: "nice", Rating: 4, PlaceID: "missing", UserID: owner.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsReference(err))

	_, err = f.CreateReview(ctx, services.CreateReviewInput{
		Text: "nice", Rating: 4, PlaceID: place.ID, UserID: "missing",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsReference(err))

	assert.Empty(t, f.GetAllReviews(ctx))
}

func TestFacade_ReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	owner := createUser(t, f, "ada@example.com")
	author := createUser(t, f, "grace@example.com")
	place := createPlace(t, f, owner.ID)

	review, err := f.CreateReview(ctx, services.CreateReviewInput{
		Text: "Great stay", Rating: 5, PlaceID: place.ID, UserID: author.ID,
	})
	require.NoError(t, err)

	byPlace := f.GetReviewsByPlace(ctx, place.ID)
	require.Len(t, byPlace, 1)
	assert.Equal(t, review.ID, byPlace[0].ID)

	gotPlace, ok := f.GetPlace(ctx, place.ID)
	require.True(t, ok)
	assert.Contains(t, gotPlace.ReviewIDs, review.ID)

	gotAuthor, ok := f.GetUser(ctx, author.ID)
	require.True(t, ok)
	assert.Contains(t, gotAuthor.ReviewIDs, review.ID)

	assert.True(t, f.DeleteReview(ctx, review.ID))
	assert.False(t, f.DeleteReview(ctx, review.ID))
	assert.Empty(t, f.GetReviewsByPlace(ctx, place.ID))
}

func TestFacade_GetReviewsByPlaceFiltersOtherPlaces(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	owner := createUser(t, f, "ada@example.com")
	first := createPlace(t, f, owner.ID)
	second := createPlace(t, f, owner.ID)

	_, err := f.CreateReview(ctx, services.CreateReviewInput{
		Text: "a", Rating: 3, PlaceID: first.ID, UserID: owner.ID,
	})
	require.NoError(t, err)
	review, err := f.CreateReview(ctx, services.CreateReviewInput{
		Text: "b", Rating: 4, PlaceID: second.ID, UserID: owner.ID,
	})
	require.NoError(t, err)

	byPlace := f.GetReviewsByPlace(ctx, second.ID)
	require.Len(t, byPlace, 1)
	assert.Equal(t, review.ID, byPlace[0].ID)
}

func TestFacade_UpdateReview(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	owner := createUser(t, f, "ada@example.com")
	place := createPlace(t, f, owner.ID)
	review, err := f.CreateReview(ctx, services.CreateReviewInput{
		Text: "ok", Rating: 3, PlaceID: place.ID, UserID: owner.ID,
	})
	require.NoError(t, err)

	rating := 1
	updated, err := f.UpdateReview(ctx, review.ID, entities.ReviewPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)
	assert.Equal(t, "ok", updated.Text)

	_, err = f.UpdateReview(ctx, "missing", entities.ReviewPatch{Rating: &rating})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFacade_ConcurrentUpdateAndRead(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	user := createUser(t, f, "ada@example.com")

	stop := make(chan struct{})
	var readers, writers sync.WaitGroup

	// First and last name are written together in one patch; a reader must
	// never see one changed without the other.
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got, ok := f.GetUser(ctx, user.ID)
				if !ok {
					t.Error("user disappeared during update")
					return
				}
				first := strings.TrimPrefix(got.FirstName, "Ada")
				last := strings.TrimPrefix(got.LastName, "Lovelace")
				if first != last {
					t.Errorf("torn read: %q / %q", got.FirstName, got.LastName)
					return
				}
			}
		}()
	}

	for i := 0; i < 4; i++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			for j := 0; j < 100; j++ {
				suffix := strconv.Itoa(j % 10)
				first := "Ada" + suffix
				last := "Lovelace" + suffix
				if _, err := f.UpdateUser(ctx, user.ID, entities.UserPatch{
					FirstName: &first,
					LastName:  &last,
				}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	writers.Wait()
	close(stop)
	readers.Wait()
}

// recordingBus captures published events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []*entities.Event
}

func (b *recordingBus) Publish(_ context.Context, _ string, event *entities.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Subscribe(context.Context, string) (<-chan *entities.Event, error) {
	return nil, nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) kindActions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, event := range b.events {
		out = append(out, string(event.Kind)+":"+string(event.Action))
	}
	return out
}

func TestFacade_CreatePlacePublishesOwnerUpdate(t *testing.T) {
	bus := &recordingBus{}
	f := services.NewFacade(memory.NewStore(), bus)

	owner := createUser(t, f, "ada@example.com")
	createPlace(t, f, owner.ID)

	recorded := bus.kindActions()
	assert.Contains(t, recorded, "Place:created")
	assert.Contains(t, recorded, "User:updated")
}

func TestFacade_CreateReviewPublishesLinkedKindEvents(t *testing.T) {
	ctx := context.Background()
	bus := &recordingBus{}
	f := services.NewFacade(memory.NewStore(), bus)

	owner := createUser(t, f, "ada@example.com")
	author := createUser(t, f, "grace@example.com")
	place := createPlace(t, f, owner.ID)

	bus.mu.Lock()
	bus.events = nil
	bus.mu.Unlock()

	_, err := f.CreateReview(ctx, services.CreateReviewInput{
		Text: "Great stay", Rating: 5, PlaceID: place.ID, UserID: author.ID,
	})
	require.NoError(t, err)

	recorded := bus.kindActions()
	assert.Contains(t, recorded, "Review:created")
	assert.Contains(t, recorded, "Place:updated")
	assert.Contains(t, recorded, "User:updated")
}

func TestFacade_AmenityLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFacade()

	amenity, err := f.CreateAmenity(ctx, services.CreateAmenityInput{Name: "Pool"})
	require.NoError(t, err)

	got, ok := f.GetAmenity(ctx, amenity.ID)
	require.True(t, ok)
	assert.Equal(t, "Pool", got.Name)

	name := "Heated pool"
	updated, err := f.UpdateAmenity(ctx, amenity.ID, entities.AmenityPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Heated pool", updated.Name)

	assert.Len(t, f.GetAllAmenities(ctx), 1)

	_, err = f.UpdateAmenity(ctx, "missing", entities.AmenityPatch{Name: &name})
	assert.True(t, apperrors.IsNotFound(err))
}
