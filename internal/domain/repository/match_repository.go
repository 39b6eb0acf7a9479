package repository

import (
	"context"
	"errors"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMatchNotFound is returned when a match is not found.
var ErrMatchNotFound = errors.New("match not found")

// MatchRepository defines the operations for swipe/match persistence.
type MatchRepository interface {
	// RecordSwipe inserts the swipe record unless the swiper already has a
	// record for the same (target, venue), in which case the existing record
	// is returned unchanged and reused is true. When the inserted record is
	// pending and the reverse pending record exists, both flip to matched
	// inside the same critical section and the reciprocal record is
	// returned; this closes the check-then-act window that would otherwise
	// allow duplicate mutual matches.
	RecordSwipe(ctx context.Context, match *entity.Match) (stored *entity.Match, reciprocal *entity.Match, reused bool, err error)

	// FindByID retrieves a single match record.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error)

	// FindBetween returns every match record connecting the two users in
	// either direction, any venue, any status.
	FindBetween(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Match, error)

	// ListForUser returns match records where the user is swiper or target.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Match, error)

	// ExpirePendingBefore transitions pending records created before the
	// cutoff to expired and reports how many were swept.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int, error)
}
