package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVenueNotFound is returned when a venue is not found.
var ErrVenueNotFound = errors.New("venue not found")

// VenueFilter narrows List results. Zero values mean "no filter".
type VenueFilter struct {
	District   string
	Type       string
	ActiveOnly bool
}

// VenueRepository defines the operations for venue persistence.
type VenueRepository interface {
	// Create persists a new venue.
	Create(ctx context.Context, venue *entity.Venue) error

	// Update replaces the stored record for venue.ID.
	Update(ctx context.Context, venue *entity.Venue) error

	// FindByID retrieves a single venue by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)

	// List returns venues matching the filter in insertion order.
	List(ctx context.Context, filter VenueFilter) ([]*entity.Venue, error)
}
