package memory

import (
	"context"
	"sync"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*entity.Notification
	byUser map[uuid.UUID][]*entity.Notification
}

// NewNotificationRepository creates an empty in-memory notification store.
func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{
		byID:   make(map[uuid.UUID]*entity.Notification),
		byUser: make(map[uuid.UUID][]*entity.Notification),
	}
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	cp := *n

	return &cp
}

func (r *notificationRepository) Create(_ context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneNotification(notification)
	r.byID[stored.ID] = stored
	r.byUser[stored.UserID] = append(r.byUser[stored.UserID], stored)

	return nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byUser[userID]

	// Newest first. Per-user slices are appended in creation order, so a
	// reversed copy is already sorted.
	notifications := make([]*entity.Notification, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		notifications = append(notifications, cloneNotification(stored[i]))
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}
	notification.Read = true

	return cloneNotification(notification), nil
}

func (r *notificationRepository) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flipped := 0
	for _, n := range r.byUser[userID] {
		if !n.Read {
			n.Read = true
			flipped++
		}
	}

	return flipped, nil
}

func (r *notificationRepository) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.byUser[userID] {
		if !n.Read {
			count++
		}
	}

	return count, nil
}
