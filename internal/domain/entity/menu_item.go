package entity

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a single entry on a venue's menu.
type MenuItem struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"` // cocktails, beers, food...
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}
