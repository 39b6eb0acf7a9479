package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a dated happening at a venue (theme night, live act, guest DJ).
type Event struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"` // "HH:MM"
	EndTime     string    `json:"end_time"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
