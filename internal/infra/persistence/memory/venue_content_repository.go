package memory

import (
	"context"
	"sort"
	"sync"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type eventRepository struct {
	mu      sync.Mutex
	byVenue map[uuid.UUID][]*entity.Event
}

// NewEventRepository creates an empty in-memory event store.
func NewEventRepository() repository.EventRepository {
	return &eventRepository{byVenue: make(map[uuid.UUID][]*entity.Event)}
}

func (r *eventRepository) Create(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *event
	r.byVenue[event.VenueID] = append(r.byVenue[event.VenueID], &cp)

	return nil
}

func (r *eventRepository) ListByVenue(_ context.Context, venueID uuid.UUID) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byVenue[venueID]
	events := make([]*entity.Event, 0, len(stored))
	for _, e := range stored {
		cp := *e
		events = append(events, &cp)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events, nil
}

type menuRepository struct {
	mu      sync.Mutex
	byVenue map[uuid.UUID][]*entity.MenuItem
}

// NewMenuRepository creates an empty in-memory menu store.
func NewMenuRepository() repository.MenuRepository {
	return &menuRepository{byVenue: make(map[uuid.UUID][]*entity.MenuItem)}
}

func (r *menuRepository) Create(_ context.Context, item *entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *item
	r.byVenue[item.VenueID] = append(r.byVenue[item.VenueID], &cp)

	return nil
}

func (r *menuRepository) ListByVenue(_ context.Context, venueID uuid.UUID) ([]*entity.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byVenue[venueID]
	items := make([]*entity.MenuItem, 0, len(stored))
	for _, item := range stored {
		cp := *item
		items = append(items, &cp)
	}

	return items, nil
}
