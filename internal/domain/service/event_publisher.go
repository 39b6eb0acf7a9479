package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the payload published for venue-related happenings
// (check-ins, completed matches, new events). The worker delivery ingests
// these into the venue activity log; external consumers can subscribe to the
// same topic.
type DomainEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Kind       string    `json:"kind"`
	VenueID    uuid.UUID `json:"venue_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing domain events to a
// message queue.
type EventPublisher interface {
	// PublishDomainEvent publishes an event for async processing. Failures
	// are the caller's to log; publishing is best-effort and never blocks a
	// user-facing operation from completing.
	PublishDomainEvent(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
