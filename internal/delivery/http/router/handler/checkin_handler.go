package handler

import (
	"log/slog"
	"net/http"

	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CheckinHandlerParams holds dependencies for CheckinHandler, injected by Fx.
type CheckinHandlerParams struct {
	fx.In

	CheckinUC usecase.CheckinUsecase
	Logger    *slog.Logger
}

// CheckinHandler holds dependencies for venue presence handlers.
type CheckinHandler struct {
	checkinUC usecase.CheckinUsecase
	logger    *slog.Logger
}

// NewCheckinHandler is the constructor for CheckinHandler.
func NewCheckinHandler(params CheckinHandlerParams) *CheckinHandler {
	return &CheckinHandler{
		checkinUC: params.CheckinUC,
		logger:    params.Logger,
	}
}

// CheckInRequest is the body of a direct check-in.
type CheckInRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	VenueID string `json:"venue_id" validate:"required,uuid"`
	Visible bool   `json:"visible"`
}

// CheckInByQRRequest is the body of a QR-scan check-in.
type CheckInByQRRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	QRData  string `json:"qr_data" validate:"required"`
	Visible bool   `json:"visible"`
}

// CheckIn records a user's presence at a venue.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid check-in input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := uuid.Parse(req.UserID)
	venueID, _ := uuid.Parse(req.VenueID)

	checkin, err := h.checkinUC.CheckIn(c.Request().Context(), usecase.CheckInInput{
		UserID:  userID,
		VenueID: venueID,
		Visible: req.Visible,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, checkin, "Checked in successfully")
}

// CheckInByQR resolves a scanned QR payload and checks the user in.
func (h *CheckinHandler) CheckInByQR(c echo.Context) error {
	var req CheckInByQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR check-in input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := uuid.Parse(req.UserID)

	checkin, err := h.checkinUC.CheckInByQR(c.Request().Context(), usecase.CheckInByQRInput{
		UserID:  userID,
		QRData:  req.QRData,
		Visible: req.Visible,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, checkin, "Checked in successfully")
}

// CheckOut closes the user's open check-in at the venue. Checking out with
// nothing open still reports success.
func (h *CheckinHandler) CheckOut(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	venueID, err := pathUUID(c, "venueId")
	if err != nil {
		return err
	}

	if err := h.checkinUC.CheckOut(c.Request().Context(), userID, venueID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Checked out successfully")
}
