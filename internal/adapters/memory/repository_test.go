package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/backend/internal/adapters/memory"
	"github.com/staybook/backend/internal/domain/entities"
)

func newUser(t *testing.T, email string) *entities.User {
	t.Helper()
	user, err := entities.NewUser("Ada", "Lovelace", email, false)
	require.NoError(t, err)
	return user
}

func TestRepository_AddThenGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	user := newUser(t, "ada@example.com")
	repo.Add(ctx, user)

	got, ok := repo.Get(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestRepository_GetAbsent(t *testing.T) {
	repo := memory.NewRepository[*entities.User]()

	_, ok := repo.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestRepository_AddOverwritesSilently(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	first := newUser(t, "ada@example.com")
	repo.Add(ctx, first)

	replacement := *first
	replacement.FirstName = "Augusta"
	repo.Add(ctx, &replacement)

	got, ok := repo.Get(ctx, first.ID)
	require.True(t, ok)
	assert.Equal(t, "Augusta", got.FirstName)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_GetAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	var want []string
	for i := 0; i < 5; i++ {
		user := newUser(t, fmt.Sprintf("user%d@example.com", i))
		repo.Add(ctx, user)
		want = append(want, user.ID)
	}

	var got []string
	for _, user := range repo.GetAll(ctx) {
		got = append(got, user.ID)
	}
	assert.Equal(t, want, got)
}

func TestRepository_UpdateAbsentReportsFalse(t *testing.T) {
	repo := memory.NewRepository[*entities.User]()

	user := newUser(t, "ada@example.com")
	assert.False(t, repo.Update(context.Background(), user))
}

func TestRepository_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	user := newUser(t, "ada@example.com")
	repo.Add(ctx, user)

	assert.True(t, repo.Delete(ctx, user.ID))
	_, ok := repo.Get(ctx, user.ID)
	assert.False(t, ok)
	assert.Empty(t, repo.GetAll(ctx))
}

func TestRepository_DeleteAbsentIsNoOp(t *testing.T) {
	repo := memory.NewRepository[*entities.User]()
	assert.False(t, repo.Delete(context.Background(), "missing"))
}

func TestRepository_FindByAttribute(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	ada := newUser(t, "ada@example.com")
	grace := newUser(t, "grace@example.com")
	repo.Add(ctx, ada)
	repo.Add(ctx, grace)

	got, ok := repo.FindByAttribute(ctx, "email", "grace@example.com")
	require.True(t, ok)
	assert.Equal(t, grace.ID, got.ID)

	_, ok = repo.FindByAttribute(ctx, "email", "nobody@example.com")
	assert.False(t, ok)

	_, ok = repo.FindByAttribute(ctx, "unknown_attribute", "x")
	assert.False(t, ok)
}

func TestRepository_ReturnsIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	user := newUser(t, "ada@example.com")
	repo.Add(ctx, user)

	// Mutating the value passed to Add must not reach the store.
	user.FirstName = "Changed"
	got, ok := repo.Get(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, "Ada", got.FirstName)

	// Mutating a fetched value must not affect later reads.
	got.FirstName = "Changed"
	got.PlaceIDs = append(got.PlaceIDs, "p1")
	again, ok := repo.Get(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, "Ada", again.FirstName)
	assert.Empty(t, again.PlaceIDs)

	// Snapshot elements are copies too.
	all := repo.GetAll(ctx)
	require.Len(t, all, 1)
	all[0].FirstName = "Changed"
	again, ok = repo.Get(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, "Ada", again.FirstName)

	found, ok := repo.FindByAttribute(ctx, "email", "ada@example.com")
	require.True(t, ok)
	found.FirstName = "Changed"
	again, _ = repo.Get(ctx, user.ID)
	assert.Equal(t, "Ada", again.FirstName)
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*entities.User]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				user, err := entities.NewUser("Ada", "Lovelace", fmt.Sprintf("u%d-%d@example.com", i, j), false)
				if err != nil {
					t.Error(err)
					return
				}
				repo.Add(ctx, user)
				repo.Get(ctx, user.ID)
				repo.GetAll(ctx)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16*50, repo.Len())
}
