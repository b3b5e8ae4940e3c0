package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/providers"
)

// kindRoutes maps entity kinds to the API route segment their cached
// responses live under.
var kindRoutes = map[entities.Kind]string{
	entities.KindUser:    "users",
	entities.KindPlace:   "places",
	entities.KindReview:  "reviews",
	entities.KindAmenity: "amenities",
}

// CacheInvalidationService purges cached HTTP responses when an entity
// mutation event arrives, so reads after a write see fresh data instead of
// waiting out the TTL.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for entity events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelEntityUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to entity updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.Event) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event != nil {
				s.handleEvent(event)
			}
		}
	}
}

// handleEvent purges the collection route and the mutated entity's item
// route for the event's kind. Mutations that touch another kind's
// back-references publish a separate event for that kind, so its routes
// are purged through this same path.
func (s *CacheInvalidationService) handleEvent(event *entities.Event) {
	route, ok := kindRoutes[event.Kind]
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pattern := fmt.Sprintf("http:cache:/api/v1/%s*", route)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
		return
	}

	log.Debug().
		Str("kind", string(event.Kind)).
		Str("entity_id", event.EntityID).
		Str("action", string(event.Action)).
		Msg("invalidated cached responses")
}
