package memory

import (
	"context"
	"sync"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type activityRepository struct {
	mu      sync.Mutex
	byVenue map[uuid.UUID][]*entity.VenueActivity
}

// NewActivityRepository creates an empty in-memory activity log.
func NewActivityRepository() repository.ActivityRepository {
	return &activityRepository{byVenue: make(map[uuid.UUID][]*entity.VenueActivity)}
}

func (r *activityRepository) Append(_ context.Context, activity *entity.VenueActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *activity
	r.byVenue[activity.VenueID] = append(r.byVenue[activity.VenueID], &cp)

	return nil
}

func (r *activityRepository) RecentByVenue(_ context.Context, venueID uuid.UUID, limit int) ([]*entity.VenueActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byVenue[venueID]

	// Newest first, capped at limit.
	activities := make([]*entity.VenueActivity, 0, min(limit, len(stored)))
	for i := len(stored) - 1; i >= 0 && len(activities) < limit; i-- {
		cp := *stored[i]
		activities = append(activities, &cp)
	}

	return activities, nil
}
