package usecase

import (
	"context"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// Candidate is a potential match at the same venue.
type Candidate struct {
	User            *UserInVenue `json:"user"`
	CommonInterests []string     `json:"common_interests"`
	DistanceKm      float64      `json:"distance_km,omitempty"`
}

// SwipeInput defines one swipe decision.
type SwipeInput struct {
	UserID   uuid.UUID
	TargetID uuid.UUID
	VenueID  uuid.UUID
	Like     bool
}

// SwipeOutput reports the stored record and, when the swipe completed a
// mutual match, the chat opened for the pair.
type SwipeOutput struct {
	Match   *entity.Match `json:"match"`
	IsMatch bool          `json:"is_match"`
	ChatID  *uuid.UUID    `json:"chat_id,omitempty"`
}

// MatchUsecase defines the interface for the venue-scoped matching flow.
type MatchUsecase interface {
	// Candidates returns the venue's visible guests the user has no match
	// history with, annotated with shared interests.
	Candidates(ctx context.Context, userID, venueID uuid.UUID) ([]*Candidate, error)

	// Swipe records a like or decline. A like meeting the reverse pending
	// like completes the match, opens the chat and notifies both users.
	Swipe(ctx context.Context, input SwipeInput) (*SwipeOutput, error)

	// MatchesForUser returns every match record the user is part of.
	MatchesForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Match, error)

	// ExpireStalePending sweeps pending swipes older than the configured
	// TTL into the expired state. A zero TTL disables the sweep; the call
	// then reports zero without touching anything.
	ExpireStalePending(ctx context.Context, now time.Time) (int, error)
}
