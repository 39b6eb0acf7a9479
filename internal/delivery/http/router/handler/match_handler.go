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

// MatchHandlerParams holds dependencies for MatchHandler, injected by Fx.
type MatchHandlerParams struct {
	fx.In

	MatchUC usecase.MatchUsecase
	Logger  *slog.Logger
}

// MatchHandler holds dependencies for the venue-scoped matching handlers.
type MatchHandler struct {
	matchUC usecase.MatchUsecase
	logger  *slog.Logger
}

// NewMatchHandler is the constructor for MatchHandler.
func NewMatchHandler(params MatchHandlerParams) *MatchHandler {
	return &MatchHandler{
		matchUC: params.MatchUC,
		logger:  params.Logger,
	}
}

// SwipeRequest is the body of a like or decline.
type SwipeRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	TargetID string `json:"target_id" validate:"required,uuid"`
	VenueID  string `json:"venue_id" validate:"required,uuid"`
	Like     bool   `json:"like"`
}

// Candidates returns the venue guests the user can swipe on.
func (h *MatchHandler) Candidates(c echo.Context) error {
	venueID, err := pathUUID(c, "venueId")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	candidates, err := h.matchUC.Candidates(c.Request().Context(), userID, venueID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, candidates, "Candidates retrieved successfully")
}

// Swipe records a like or decline; a mutual like completes the match.
func (h *MatchHandler) Swipe(c echo.Context) error {
	var req SwipeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid swipe input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := uuid.Parse(req.UserID)
	targetID, _ := uuid.Parse(req.TargetID)
	venueID, _ := uuid.Parse(req.VenueID)

	output, err := h.matchUC.Swipe(c.Request().Context(), usecase.SwipeInput{
		UserID:   userID,
		TargetID: targetID,
		VenueID:  venueID,
		Like:     req.Like,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Swipe recorded"
	if output.IsMatch {
		message = "It's a match!"
	}

	return response.Success(c, http.StatusCreated, output, message)
}

// MatchesForUser returns every match record the user is part of.
func (h *MatchHandler) MatchesForUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	matches, err := h.matchUC.MatchesForUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, matches, "Matches retrieved successfully")
}
