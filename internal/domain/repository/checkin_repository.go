package repository

import (
	"context"
	"errors"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCheckinNotFound is returned when a checkin is not found.
var ErrCheckinNotFound = errors.New("checkin not found")

// CheckinRepository defines the operations for venue-presence persistence.
type CheckinRepository interface {
	// Open records a new checkin, or returns the already-open checkin for
	// the same (user, venue) pair. The open-checkin uniqueness invariant is
	// enforced here, at the store boundary, so callers cannot create
	// duplicate presence records. reused is true when an existing open
	// checkin was returned instead of the given one being inserted.
	Open(ctx context.Context, checkin *entity.Checkin) (stored *entity.Checkin, reused bool, err error)

	// Close stamps the checkout time on the open checkin for the pair and
	// returns it. When no open checkin exists, it returns (nil, nil): a
	// checkout with nothing to close is a silent no-op by contract.
	Close(ctx context.Context, userID, venueID uuid.UUID, at time.Time) (*entity.Checkin, error)

	// FindOpen returns the open checkin for the pair, or ErrCheckinNotFound.
	FindOpen(ctx context.Context, userID, venueID uuid.UUID) (*entity.Checkin, error)

	// ActiveByVenue returns all open checkins for a venue in insertion order.
	ActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]*entity.Checkin, error)

	// ActiveByUser returns all open checkins for a user.
	ActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Checkin, error)

	// ByVenueSince returns every checkin (open or closed) for a venue whose
	// check-in time is at or after the cutoff. Used by venue analytics.
	ByVenueSince(ctx context.Context, venueID uuid.UUID, since time.Time) ([]*entity.Checkin, error)
}
