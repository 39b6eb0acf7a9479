package memory

import (
	"context"
	"sync"
	"time"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type checkinKey struct {
	userID  uuid.UUID
	venueID uuid.UUID
}

type checkinRepository struct {
	mu sync.Mutex

	// all holds every checkin ever recorded, in insertion order. Closed
	// records stay for analytics.
	all []*entity.Checkin

	// open indexes the currently-open checkin per (user, venue) pair. This
	// is the uniqueness guarantee: Open consults it before inserting.
	open map[checkinKey]*entity.Checkin
}

// NewCheckinRepository creates an empty in-memory checkin store.
func NewCheckinRepository() repository.CheckinRepository {
	return &checkinRepository{open: make(map[checkinKey]*entity.Checkin)}
}

func cloneCheckin(c *entity.Checkin) *entity.Checkin {
	cp := *c
	if c.CheckedOutAt != nil {
		at := *c.CheckedOutAt
		cp.CheckedOutAt = &at
	}

	return &cp
}

func (r *checkinRepository) Open(_ context.Context, checkin *entity.Checkin) (*entity.Checkin, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := checkinKey{userID: checkin.UserID, venueID: checkin.VenueID}
	if existing, ok := r.open[key]; ok {
		return cloneCheckin(existing), true, nil
	}

	stored := cloneCheckin(checkin)
	r.all = append(r.all, stored)
	r.open[key] = stored

	return cloneCheckin(stored), false, nil
}

func (r *checkinRepository) Close(_ context.Context, userID, venueID uuid.UUID, at time.Time) (*entity.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := checkinKey{userID: userID, venueID: venueID}
	existing, ok := r.open[key]
	if !ok {
		return nil, nil
	}

	closedAt := at
	existing.CheckedOutAt = &closedAt
	delete(r.open, key)

	return cloneCheckin(existing), nil
}

func (r *checkinRepository) FindOpen(_ context.Context, userID, venueID uuid.UUID) (*entity.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.open[checkinKey{userID: userID, venueID: venueID}]
	if !ok {
		return nil, repository.ErrCheckinNotFound
	}

	return cloneCheckin(existing), nil
}

func (r *checkinRepository) ActiveByVenue(_ context.Context, venueID uuid.UUID) ([]*entity.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []*entity.Checkin
	for _, c := range r.all {
		if c.VenueID == venueID && c.Open() {
			active = append(active, cloneCheckin(c))
		}
	}

	return active, nil
}

func (r *checkinRepository) ActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []*entity.Checkin
	for _, c := range r.all {
		if c.UserID == userID && c.Open() {
			active = append(active, cloneCheckin(c))
		}
	}

	return active, nil
}

func (r *checkinRepository) ByVenueSince(_ context.Context, venueID uuid.UUID, since time.Time) ([]*entity.Checkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var checkins []*entity.Checkin
	for _, c := range r.all {
		if c.VenueID == venueID && !c.CheckedInAt.Before(since) {
			checkins = append(checkins, cloneCheckin(c))
		}
	}

	return checkins, nil
}
