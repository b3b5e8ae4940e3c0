package entities

import "time"

// EventAction represents the lifecycle transition an event describes
type EventAction string

const (
	EventActionCreated EventAction = "created"
	EventActionUpdated EventAction = "updated"
	EventActionDeleted EventAction = "deleted"
)

// Event represents an entity lifecycle notification emitted by the facade
// after a successful mutation.
type Event struct {
	ID        string      `json:"id"`
	Kind      Kind        `json:"kind"`
	EntityID  string      `json:"entity_id"`
	Action    EventAction `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new lifecycle event for the given entity.
func NewEvent(kind Kind, entityID string, action EventAction) *Event {
	return &Event{
		ID:        newID(),
		Kind:      kind,
		EntityID:  entityID,
		Action:    action,
		Timestamp: now(),
	}
}
