package repository

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// EventRepository defines the operations for venue event persistence.
type EventRepository interface {
	// Create persists a new event.
	Create(ctx context.Context, event *entity.Event) error

	// ListByVenue returns the venue's events in date order.
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*entity.Event, error)
}

// MenuRepository defines the operations for venue menu persistence.
type MenuRepository interface {
	// Create persists a new menu item.
	Create(ctx context.Context, item *entity.MenuItem) error

	// ListByVenue returns the venue's menu items in insertion order.
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*entity.MenuItem, error)
}
