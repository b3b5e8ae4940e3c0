package providers

import (
	"context"

	"github.com/staybook/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to entity
// lifecycle events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.Event) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.Event, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event streams
const (
	// EventChannelEntityUpdates is the channel carrying all entity mutations
	EventChannelEntityUpdates = "entity:updates"
)
