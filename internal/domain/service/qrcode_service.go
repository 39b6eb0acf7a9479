package service

import "github.com/google/uuid"

// QRCodeService generates and parses the check-in QR codes venues print on
// tables and doors. Scanning one checks the user in without searching for the
// venue by hand.
type QRCodeService interface {
	// GenerateCheckinQR renders the venue's check-in QR code as a PNG.
	GenerateCheckinQR(venueID uuid.UUID) ([]byte, error)

	// ParseCheckinQR extracts the venue ID from scanned QR payload data.
	ParseCheckinQR(qrData string) (uuid.UUID, error)
}
