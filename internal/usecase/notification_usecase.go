package usecase

import (
	"context"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// BroadcastInput defines an admin-initiated notification blast. A nil VenueID
// targets every registered user; a set one targets the venue's active guests.
type BroadcastInput struct {
	Title   string
	Message string
	Type    entity.NotificationType
	VenueID *uuid.UUID
}

// NotificationUsecase defines the interface for in-app notification
// management use cases.
type NotificationUsecase interface {
	// ListForUser returns the user's notifications, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// MarkRead flips the read flag on one notification.
	MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// MarkAllRead flips the read flag on all of the user's notifications
	// and reports how many were flipped.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)

	// UnreadCount counts the user's unread notifications.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	// Broadcast fans a notification out to its audience and reports the
	// number of recipients.
	Broadcast(ctx context.Context, input BroadcastInput) (int, error)
}
