package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type venueRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*entity.Venue
	order []uuid.UUID
}

// NewVenueRepository creates an empty in-memory venue store.
func NewVenueRepository() repository.VenueRepository {
	return &venueRepository{byID: make(map[uuid.UUID]*entity.Venue)}
}

func cloneVenue(v *entity.Venue) *entity.Venue {
	cp := *v
	cp.MusicGenres = slices.Clone(v.MusicGenres)
	cp.Features = slices.Clone(v.Features)
	cp.Hours = maps.Clone(v.Hours)

	return &cp
}

func (r *venueRepository) Create(_ context.Context, venue *entity.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[venue.ID]; !ok {
		r.order = append(r.order, venue.ID)
	}
	r.byID[venue.ID] = cloneVenue(venue)

	return nil
}

func (r *venueRepository) Update(_ context.Context, venue *entity.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[venue.ID]; !ok {
		return repository.ErrVenueNotFound
	}
	r.byID[venue.ID] = cloneVenue(venue)

	return nil
}

func (r *venueRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	venue, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}

	return cloneVenue(venue), nil
}

func (r *venueRepository) List(_ context.Context, filter repository.VenueFilter) ([]*entity.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	venues := make([]*entity.Venue, 0, len(r.order))
	for _, id := range r.order {
		venue := r.byID[id]
		if filter.ActiveOnly && !venue.IsActive {
			continue
		}
		if filter.District != "" && !strings.EqualFold(venue.District, filter.District) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(venue.Type, filter.Type) {
			continue
		}
		venues = append(venues, cloneVenue(venue))
	}

	return venues, nil
}
