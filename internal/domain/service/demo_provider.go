package service

import "github.com/google/uuid"

// FillerGuest is a demo-only person injected into a venue's people list so a
// pre-launch demo never shows an empty room.
type FillerGuest struct {
	UserID     uuid.UUID
	Name       string
	Age        int
	Gender     string
	Interests  []string
	AvatarURL  string
	Profession string
	University string
}

// DemoProvider supplies the randomized demo-mode values that overlay real
// aggregation when the corresponding demo flags are on. Keeping the demo
// flavoring behind this interface keeps the production aggregation pure and
// testable.
type DemoProvider interface {
	// VisitorCount returns a mock live visitor total.
	VisitorCount() int

	// GenderSplit returns mock male/female percentages summing to 100.
	GenderSplit() (malePct, femalePct int)

	// DistanceKm returns a mock distance to a match candidate.
	DistanceKm() float64

	// FillerGuests returns the demo guests to append to a venue's people
	// list. The same venue always gets the same guests.
	FillerGuests(venueID uuid.UUID) []FillerGuest
}
