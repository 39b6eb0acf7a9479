package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the operations for in-app notification
// persistence.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// MarkRead flips the read flag on a single notification.
	MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// MarkAllRead flips the read flag on all of the user's notifications
	// and reports how many were flipped.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)

	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}
