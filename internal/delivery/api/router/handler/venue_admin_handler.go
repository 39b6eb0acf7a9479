// Package handler contains the HTTP handlers for the admin API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"pulse/internal/delivery/api/response"
	"pulse/internal/domain/entity"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// VenueAdminHandlerParams holds dependencies for VenueAdminHandler, injected
// by Fx.
type VenueAdminHandlerParams struct {
	fx.In

	VenueUC usecase.VenueUsecase
	Logger  *slog.Logger
}

// VenueAdminHandler holds dependencies for venue management handlers.
type VenueAdminHandler struct {
	venueUC usecase.VenueUsecase
	logger  *slog.Logger
}

// NewVenueAdminHandler is the constructor for VenueAdminHandler.
func NewVenueAdminHandler(params VenueAdminHandlerParams) *VenueAdminHandler {
	return &VenueAdminHandler{
		venueUC: params.VenueUC,
		logger:  params.Logger,
	}
}

// OpenHoursRequest is one weekday's opening window.
type OpenHoursRequest struct {
	Open  string `json:"open" validate:"required"`
	Close string `json:"close" validate:"required"`
}

// CreateVenueRequest is the body for registering a venue.
type CreateVenueRequest struct {
	Name        string                      `json:"name" validate:"required"`
	Address     string                      `json:"address"`
	District    string                      `json:"district" validate:"required"`
	Latitude    float64                     `json:"latitude"`
	Longitude   float64                     `json:"longitude"`
	ImageURL    string                      `json:"image_url"`
	Type        string                      `json:"type" validate:"required"`
	PriceTier   int                         `json:"price_tier" validate:"gte=0,lte=4"`
	MusicGenres []string                    `json:"music_genres"`
	Features    []string                    `json:"features"`
	Hours       map[string]OpenHoursRequest `json:"hours"`
	OwnerID     string                      `json:"owner_id" validate:"omitempty,uuid"`
}

// UpdateVenueRequest is the body for a partial venue update. Absent fields
// are left untouched.
type UpdateVenueRequest struct {
	Name        *string                     `json:"name"`
	Address     *string                     `json:"address"`
	District    *string                     `json:"district"`
	ImageURL    *string                     `json:"image_url"`
	Type        *string                     `json:"type"`
	PriceTier   *int                        `json:"price_tier"`
	MusicGenres []string                    `json:"music_genres"`
	Features    []string                    `json:"features"`
	Hours       map[string]OpenHoursRequest `json:"hours"`
	IsActive    *bool                       `json:"is_active"`
}

// CreateEventRequest is the body for announcing a venue event.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ImageURL    string    `json:"image_url"`
}

// CreateMenuItemRequest is the body for adding a menu entry.
type CreateMenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
}

// CreateVenue registers a new venue.
func (h *VenueAdminHandler) CreateVenue(c echo.Context) error {
	var req CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid venue input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ownerID := uuid.Nil
	if req.OwnerID != "" {
		ownerID, _ = uuid.Parse(req.OwnerID)
	}

	venue, err := h.venueUC.CreateVenue(c.Request().Context(), usecase.CreateVenueInput{
		Name:        req.Name,
		Address:     req.Address,
		District:    req.District,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		Type:        req.Type,
		PriceTier:   req.PriceTier,
		MusicGenres: req.MusicGenres,
		Features:    req.Features,
		Hours:       toEntityHours(req.Hours),
		OwnerID:     ownerID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, venue)
}

// UpdateVenue applies a partial update to a venue.
func (h *VenueAdminHandler) UpdateVenue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid venue ID format")
	}

	var req UpdateVenueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid venue input")
	}

	venue, err := h.venueUC.UpdateVenue(c.Request().Context(), id, usecase.UpdateVenueInput{
		Name:        req.Name,
		Address:     req.Address,
		District:    req.District,
		ImageURL:    req.ImageURL,
		Type:        req.Type,
		PriceTier:   req.PriceTier,
		MusicGenres: req.MusicGenres,
		Features:    req.Features,
		Hours:       toEntityHours(req.Hours),
		IsActive:    req.IsActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, venue)
}

// CreateEvent announces an event and notifies the venue's active guests.
func (h *VenueAdminHandler) CreateEvent(c echo.Context) error {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid venue ID format")
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.venueUC.CreateEvent(c.Request().Context(), usecase.CreateEventInput{
		VenueID:     venueID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, event)
}

// CreateMenuItem adds a menu entry to a venue.
func (h *VenueAdminHandler) CreateMenuItem(c echo.Context) error {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid venue ID format")
	}

	var req CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.venueUC.CreateMenuItem(c.Request().Context(), usecase.CreateMenuItemInput{
		VenueID:     venueID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, item)
}

// HealthCheck is a simple handler to check if the admin API is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func toEntityHours(hours map[string]OpenHoursRequest) map[string]entity.OpenHours {
	if hours == nil {
		return nil
	}

	out := make(map[string]entity.OpenHours, len(hours))
	for day, window := range hours {
		out[day] = entity.OpenHours{Open: window.Open, Close: window.Close}
	}

	return out
}
