package usecase

import (
	"context"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// GeoPoint is a caller-supplied location used for distance sorting.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// ListVenuesOptions narrows and orders venue discovery results.
type ListVenuesOptions struct {
	District string
	Type     string

	// Near, when set, fills DistanceKm on every result and sorts by it.
	Near *GeoPoint
}

// CrowdStats is the live crowd snapshot shown on venue cards. The gender
// ratio counts male and female guests only; a venue with neither reports an
// even 50/50 split.
type CrowdStats struct {
	CurrentVisitors int    `json:"current_visitors"`
	Density         string `json:"density"` // low, medium, high
	MalePercent     int    `json:"male_percent"`
	FemalePercent   int    `json:"female_percent"`
}

// VenueWithStats decorates a venue with its live crowd snapshot.
type VenueWithStats struct {
	*entity.Venue
	Stats      CrowdStats `json:"stats"`
	IsOpen     bool       `json:"is_open"`
	DistanceKm float64    `json:"distance_km,omitempty"`
}

// VenueAnalytics is the owner-facing daily dashboard of a venue.
type VenueAnalytics struct {
	TodayVisits    int                     `json:"today_visits"`
	UniqueVisitors int                     `json:"unique_visitors"`
	CurrentCount   int                     `json:"current_count"`
	MalePercent    int                     `json:"male_percent"`
	FemalePercent  int                     `json:"female_percent"`
	PeakHour       string                  `json:"peak_hour"` // "22:00", empty when no visits today.
	AvgStayMinutes int                     `json:"avg_stay_minutes"`
	RecentActivity []*entity.VenueActivity `json:"recent_activity"`
}

// CreateVenueInput defines the data for registering a venue.
type CreateVenueInput struct {
	Name        string
	Address     string
	District    string
	Latitude    float64
	Longitude   float64
	ImageURL    string
	Type        string
	PriceTier   int
	MusicGenres []string
	Features    []string
	Hours       map[string]entity.OpenHours
	OwnerID     uuid.UUID
}

// UpdateVenueInput defines a partial venue update. Nil fields are left as-is.
type UpdateVenueInput struct {
	Name        *string
	Address     *string
	District    *string
	ImageURL    *string
	Type        *string
	PriceTier   *int
	MusicGenres []string
	Features    []string
	Hours       map[string]entity.OpenHours
	IsActive    *bool
}

// CreateEventInput defines the data for announcing a venue event.
type CreateEventInput struct {
	VenueID     uuid.UUID
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	ImageURL    string
}

// CreateMenuItemInput defines the data for adding a menu entry.
type CreateMenuItemInput struct {
	VenueID     uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    string
}

// VenueUsecase defines the interface for venue discovery and management.
type VenueUsecase interface {
	// ListVenues returns active venues with live stats, optionally filtered
	// and distance-sorted.
	ListVenues(ctx context.Context, opts ListVenuesOptions) ([]*VenueWithStats, error)

	// GetVenue returns one venue with live stats.
	GetVenue(ctx context.Context, id uuid.UUID) (*VenueWithStats, error)

	// Events returns the venue's events in date order.
	Events(ctx context.Context, venueID uuid.UUID) ([]*entity.Event, error)

	// Menu returns the venue's menu items.
	Menu(ctx context.Context, venueID uuid.UUID) ([]*entity.MenuItem, error)

	// Analytics returns the owner-facing daily dashboard.
	Analytics(ctx context.Context, venueID uuid.UUID) (*VenueAnalytics, error)

	// CheckinQR renders the venue's check-in QR code as a PNG.
	CheckinQR(ctx context.Context, venueID uuid.UUID) ([]byte, error)

	// CreateVenue registers a new venue (admin surface).
	CreateVenue(ctx context.Context, input CreateVenueInput) (*entity.Venue, error)

	// UpdateVenue applies a partial update (admin surface).
	UpdateVenue(ctx context.Context, id uuid.UUID, input UpdateVenueInput) (*entity.Venue, error)

	// CreateEvent announces an event and notifies the venue's active guests
	// (admin surface).
	CreateEvent(ctx context.Context, input CreateEventInput) (*entity.Event, error)

	// CreateMenuItem adds a menu entry (admin surface).
	CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*entity.MenuItem, error)
}
