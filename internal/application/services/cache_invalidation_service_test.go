package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/backend/internal/adapters/memory"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/providers"
)

// channelBus is an in-process providers.EventBus for tests.
type channelBus struct {
	mu       sync.Mutex
	channels map[string][]chan *entities.Event
}

func newChannelBus() *channelBus {
	return &channelBus{channels: make(map[string][]chan *entities.Event)}
}

func (b *channelBus) Publish(_ context.Context, channel string, event *entities.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, subscriber := range b.channels[channel] {
		subscriber <- event
	}
	return nil
}

func (b *channelBus) Subscribe(_ context.Context, channel string) (<-chan *entities.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subscriber := make(chan *entities.Event, 16)
	b.channels[channel] = append(b.channels[channel], subscriber)
	return subscriber, nil
}

func (b *channelBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, subscribers := range b.channels {
		for _, subscriber := range subscribers {
			close(subscriber)
		}
	}
	b.channels = make(map[string][]chan *entities.Event)
	return nil
}

// recordingCache records DeletePattern calls.
type recordingCache struct {
	mu       sync.Mutex
	patterns []string
}

func (c *recordingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("cache miss")
}

func (c *recordingCache) Set(context.Context, string, []byte, int) error { return nil }

func (c *recordingCache) Delete(context.Context, string) error { return nil }

func (c *recordingCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	return nil
}

func (c *recordingCache) Exists(context.Context, string) (bool, error) { return false, nil }

func (c *recordingCache) recorded() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.patterns...)
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCacheInvalidation_PurgesMutatedKindRoutes(t *testing.T) {
	bus := newChannelBus()
	cache := &recordingCache{}

	svc := services.NewCacheInvalidationService(cache, bus)
	require.NoError(t, svc.Start())
	defer svc.Stop()

	facade := services.NewFacade(memory.NewStore(), bus)
	user := createUser(t, facade, "ada@example.com")

	waitFor(t, func() bool { return len(cache.recorded()) >= 1 })
	assert.Contains(t, cache.recorded(), "http:cache:/api/v1/users*")

	email := "countess@example.com"
	_, err := facade.UpdateUser(context.Background(), user.ID, entities.UserPatch{Email: &email})
	require.NoError(t, err)

	waitFor(t, func() bool { return len(cache.recorded()) >= 2 })
}

func TestCacheInvalidation_IgnoresUnknownKinds(t *testing.T) {
	bus := newChannelBus()
	cache := &recordingCache{}

	svc := services.NewCacheInvalidationService(cache, bus)
	require.NoError(t, svc.Start())
	defer svc.Stop()

	event := entities.NewEvent(entities.Kind("Unknown"), "id", entities.EventActionCreated)
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelEntityUpdates, event))

	event = entities.NewEvent(entities.KindAmenity, "id", entities.EventActionCreated)
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelEntityUpdates, event))

	waitFor(t, func() bool { return len(cache.recorded()) == 1 })
	assert.True(t, strings.HasPrefix(cache.recorded()[0], "http:cache:/api/v1/amenities"))
}

func TestCacheInvalidation_StopEndsProcessing(t *testing.T) {
	bus := newChannelBus()
	cache := &recordingCache{}

	svc := services.NewCacheInvalidationService(cache, bus)
	require.NoError(t, svc.Start())
	svc.Stop()

	// Events after Stop may be dropped; the service must not panic.
	event := entities.NewEvent(entities.KindUser, "id", entities.EventActionDeleted)
	assert.NoError(t, bus.Publish(context.Background(), providers.EventChannelEntityUpdates, event))
}
