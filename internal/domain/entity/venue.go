package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OpenHours is a single day's opening window in "HH:MM" 24h notation.
// Overnight windows (Close before Open, e.g. 22:00–04:00) are allowed and
// roll over into the following day.
type OpenHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Venue is a nightlife venue shown in discovery. Venues are seeded or managed
// through the admin API; end users never mutate them.
type Venue struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	District    string               `json:"district"`
	Latitude    float64              `json:"latitude"`
	Longitude   float64              `json:"longitude"`
	ImageURL    string               `json:"image_url"`
	Type        string               `json:"type"`       // club, bar, lounge, rooftop...
	PriceTier   int                  `json:"price_tier"` // 1 (cheap) to 3 (expensive).
	MusicGenres []string             `json:"music_genres"`
	Features    []string             `json:"features"`
	Hours       map[string]OpenHours `json:"hours"` // Keyed by lowercase weekday name.
	IsActive    bool                 `json:"is_active"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// DayKey returns the Hours key for a weekday.
func DayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// OpenAt reports whether the venue is open at the given moment according to
// its opening hours. A venue with no hours for the day is closed, unless the
// previous day has an overnight window still running.
func (v *Venue) OpenAt(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()

	if window, ok := v.Hours[DayKey(t.Weekday())]; ok {
		openMin, okOpen := parseClock(window.Open)
		closeMin, okClose := parseClock(window.Close)
		if okOpen && okClose {
			if closeMin > openMin {
				if minute >= openMin && minute < closeMin {
					return true
				}
			} else if minute >= openMin {
				// Overnight window, still before midnight.
				return true
			}
		}
	}

	// The tail of yesterday's overnight window.
	yesterday := (t.Weekday() + 6) % 7
	if window, ok := v.Hours[DayKey(yesterday)]; ok {
		openMin, okOpen := parseClock(window.Open)
		closeMin, okClose := parseClock(window.Close)
		if okOpen && okClose && closeMin <= openMin && minute < closeMin {
			return true
		}
	}

	return false
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}
