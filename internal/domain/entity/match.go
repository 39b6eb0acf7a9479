package entity

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus is the state of a swipe record.
//
//	pending --(reciprocal pending found)--> matched   [side effect: chat created]
//	pending --(explicit decline)----------> declined
//	pending --(TTL sweep, when enabled)---> expired
//
// matched, declined and expired are terminal.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchMatched  MatchStatus = "matched"
	MatchDeclined MatchStatus = "declined"
	MatchExpired  MatchStatus = "expired"
)

// Match records one user's swipe decision on another, scoped to a venue visit.
// A mutual pair of pending records becomes a matched pair.
type Match struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`   // The swiper.
	TargetID  uuid.UUID   `json:"target_id"` // The user being swiped on.
	VenueID   uuid.UUID   `json:"venue_id"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	MatchedAt *time.Time  `json:"matched_at,omitempty"`
}
