package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "pulse/internal/delivery/context"
	"pulse/internal/domain/entity"
	domainerrors "pulse/internal/domain/errors"
	"pulse/internal/domain/repository"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	checkinRepo      repository.CheckinRepository
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	CheckinRepo      repository.CheckinRepository
	Logger           *slog.Logger
}

// NewNotificationService creates a new notification service instance.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		userRepo:         params.UserRepo,
		checkinRepo:      params.CheckinRepo,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListForUser returns the user's notifications, newest first.
func (srv *notificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	return srv.notificationRepo.ListByUser(ctx, userID)
}

// MarkRead flips the read flag on one notification.
func (srv *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	notification, err := srv.notificationRepo.MarkRead(ctx, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return nil, domainerrors.ErrNotificationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "mark notification read")
	}

	return notification, nil
}

// MarkAllRead flips the read flag on all of the user's notifications.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return srv.notificationRepo.MarkAllRead(ctx, userID)
}

// UnreadCount counts the user's unread notifications.
func (srv *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return srv.notificationRepo.CountUnread(ctx, userID)
}

// Broadcast fans a notification out: to every registered user, or to a
// venue's currently checked-in guests when a venue is given.
func (srv *notificationService) Broadcast(ctx context.Context, input usecase.BroadcastInput) (int, error) {
	if !input.Type.Valid() {
		return 0, domainerrors.ErrValidationFailed.WithDetails(
			map[string]string{"type": "unknown notification type"},
		)
	}

	var audience []uuid.UUID
	if input.VenueID != nil {
		active, err := srv.checkinRepo.ActiveByVenue(ctx, *input.VenueID)
		if err != nil {
			return 0, errors.Wrap(err, "list venue guests")
		}
		for _, c := range active {
			audience = append(audience, c.UserID)
		}
	} else {
		users, err := srv.userRepo.All(ctx)
		if err != nil {
			return 0, errors.Wrap(err, "list users")
		}
		for _, u := range users {
			audience = append(audience, u.ID)
		}
	}

	now := time.Now()
	delivered := 0
	for _, userID := range audience {
		notification := &entity.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     input.Title,
			Message:   input.Message,
			Type:      input.Type,
			CreatedAt: now,
		}
		if err := srv.notificationRepo.Create(ctx, notification); err != nil {
			srv.log(ctx).Warn("broadcast notification not created",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)

			continue
		}
		delivered++
	}

	srv.log(ctx).Info("notification broadcast",
		slog.Int("recipients", delivered),
		slog.Bool("venue_scoped", input.VenueID != nil),
	)

	return delivered, nil
}
