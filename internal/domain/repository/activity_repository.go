package repository

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityRepository defines the operations for the venue activity log.
type ActivityRepository interface {
	// Append persists a new activity row.
	Append(ctx context.Context, activity *entity.VenueActivity) error

	// RecentByVenue returns the venue's newest activity rows, newest first,
	// capped at limit.
	RecentByVenue(ctx context.Context, venueID uuid.UUID, limit int) ([]*entity.VenueActivity, error)
}
