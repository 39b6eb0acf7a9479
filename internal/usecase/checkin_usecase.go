package usecase

import (
	"context"
	"time"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckInInput defines a direct check-in request.
type CheckInInput struct {
	UserID  uuid.UUID
	VenueID uuid.UUID
	Visible bool
}

// CheckInByQRInput defines a check-in via scanned QR payload.
type CheckInByQRInput struct {
	UserID  uuid.UUID
	QRData  string
	Visible bool
}

// UserInVenue is one person on a venue's live people list.
type UserInVenue struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Interests   []string  `json:"interests"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Profession  string    `json:"profession,omitempty"`
	University  string    `json:"university,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// CheckinUsecase defines the interface for venue presence operations.
type CheckinUsecase interface {
	// CheckIn records the user's presence at a venue. Checking in twice
	// without checking out returns the original open record.
	CheckIn(ctx context.Context, input CheckInInput) (*entity.Checkin, error)

	// CheckInByQR resolves the venue from a scanned QR payload and checks
	// the user in.
	CheckInByQR(ctx context.Context, input CheckInByQRInput) (*entity.Checkin, error)

	// CheckOut closes the user's open checkin at the venue. Checking out
	// with nothing open is a silent no-op.
	CheckOut(ctx context.Context, userID, venueID uuid.UUID) error

	// PeopleIn returns the venue's visible active guests joined to their
	// profiles. Guests whose accounts no longer resolve are skipped.
	PeopleIn(ctx context.Context, venueID uuid.UUID) ([]*UserInVenue, error)
}
