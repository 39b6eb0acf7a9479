// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies in-app notifications for client-side grouping.
type NotificationType string

const (
	NotificationAlert        NotificationType = "alert"
	NotificationPromotion    NotificationType = "promotion"
	NotificationSocial       NotificationType = "social"
	NotificationEvent        NotificationType = "event"
	NotificationSubscription NotificationType = "subscription"
)

// Valid reports whether the type is one of the known values.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAlert, NotificationPromotion, NotificationSocial,
		NotificationEvent, NotificationSubscription:
		return true
	}

	return false
}

// Notification is an in-app notification addressed to a single user. The only
// mutation after creation is flipping the read flag.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
