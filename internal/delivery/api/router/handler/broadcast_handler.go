package handler

import (
	"log/slog"
	"net/http"

	"pulse/internal/delivery/api/response"
	"pulse/internal/domain/entity"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BroadcastHandlerParams holds dependencies for BroadcastHandler, injected
// by Fx.
type BroadcastHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// BroadcastHandler holds dependencies for the ops broadcast handler.
type BroadcastHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewBroadcastHandler is the constructor for BroadcastHandler.
func NewBroadcastHandler(params BroadcastHandlerParams) *BroadcastHandler {
	return &BroadcastHandler{
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
}

// BroadcastRequest is the body of an ops broadcast. VenueID narrows the
// audience to users currently checked in there; absent, every user receives
// the notification.
type BroadcastRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=alert promotion social event subscription"`
	VenueID string `json:"venue_id" validate:"omitempty,uuid"`
}

// Broadcast fans a notification out to its audience.
func (h *BroadcastHandler) Broadcast(c echo.Context) error {
	var req BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid broadcast input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.BroadcastInput{
		Title:   req.Title,
		Message: req.Message,
		Type:    entity.NotificationType(req.Type),
	}
	if req.VenueID != "" {
		venueID, _ := uuid.Parse(req.VenueID)
		input.VenueID = &venueID
	}

	delivered, err := h.notificationUC.Broadcast(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, map[string]int{"delivered": delivered})
}
