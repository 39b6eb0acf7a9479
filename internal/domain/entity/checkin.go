package entity

import (
	"time"

	"github.com/google/uuid"
)

// Checkin is a time-bounded record of a user's presence at a venue. A nil
// CheckedOutAt means the user is currently there. Records are closed by
// stamping the checkout time and are never physically removed.
//
// At most one open checkin exists per (user, venue) pair; the store enforces
// this with a keyed upsert rather than a blind append.
type Checkin struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	VenueID      uuid.UUID  `json:"venue_id"`
	CheckedInAt  time.Time  `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	Visible      bool       `json:"visible"` // Whether the user appears in the venue's people list.
}

// Open reports whether the checkin has not been closed yet.
func (c *Checkin) Open() bool {
	return c.CheckedOutAt == nil
}
