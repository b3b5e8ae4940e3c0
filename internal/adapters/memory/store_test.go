package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/backend/internal/adapters/memory"
	"github.com/staybook/backend/internal/domain/entities"
)

func TestStore_KindPartitionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	user := newUser(t, "ada@example.com")
	amenity, err := entities.NewAmenity("Wi-Fi")
	require.NoError(t, err)

	store.Add(ctx, user)
	store.Add(ctx, amenity)

	_, ok := store.Get(ctx, user.ID, entities.KindAmenity)
	assert.False(t, ok)

	got, ok := store.Get(ctx, user.ID, entities.KindUser)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.EntityID())

	assert.Len(t, store.GetAll(ctx, entities.KindUser), 1)
	assert.Len(t, store.GetAll(ctx, entities.KindAmenity), 1)
	assert.Empty(t, store.GetAll(ctx, entities.KindPlace))
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	review, err := entities.NewReview("fine", 3, "place-1", "user-1")
	require.NoError(t, err)
	store.Add(ctx, review)

	rating := 5
	require.NoError(t, review.Apply(entities.ReviewPatch{Rating: &rating}))
	assert.True(t, store.Update(ctx, review))

	got, ok := store.Get(ctx, review.ID, entities.KindReview)
	require.True(t, ok)
	assert.Equal(t, 5, got.(*entities.Review).Rating)

	assert.True(t, store.Delete(ctx, review.ID, entities.KindReview))
	assert.False(t, store.Delete(ctx, review.ID, entities.KindReview))
	_, ok = store.Get(ctx, review.ID, entities.KindReview)
	assert.False(t, ok)
}

func TestStore_FindByAttributeScopedToKind(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	user := newUser(t, "ada@example.com")
	store.Add(ctx, user)

	got, ok := store.FindByAttribute(ctx, entities.KindUser, "email", "ada@example.com")
	require.True(t, ok)
	assert.Equal(t, user.ID, got.EntityID())

	_, ok = store.FindByAttribute(ctx, entities.KindPlace, "email", "ada@example.com")
	assert.False(t, ok)
}
