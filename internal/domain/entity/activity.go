package entity

import (
	"time"

	"github.com/google/uuid"
)

// Activity kinds recorded in the venue activity log.
const (
	ActivityCheckinCreated = "checkin.created"
	ActivityCheckinClosed  = "checkin.closed"
	ActivityMatchCompleted = "match.completed"
	ActivityEventCreated   = "venue.event_created"
)

// VenueActivity is one row of the venue activity log, fed by the worker from
// published domain events and surfaced in venue analytics.
type VenueActivity struct {
	ID         uuid.UUID `json:"id"`
	VenueID    uuid.UUID `json:"venue_id"`
	Kind       string    `json:"kind"`
	ActorID    uuid.UUID `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
