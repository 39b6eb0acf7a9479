package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VenueHandlerParams holds dependencies for VenueHandler, injected by Fx.
type VenueHandlerParams struct {
	fx.In

	VenueUC   usecase.VenueUsecase
	CheckinUC usecase.CheckinUsecase
	Logger    *slog.Logger
}

// VenueHandler holds dependencies for venue discovery handlers.
type VenueHandler struct {
	venueUC   usecase.VenueUsecase
	checkinUC usecase.CheckinUsecase
	logger    *slog.Logger
}

// NewVenueHandler is the constructor for VenueHandler.
func NewVenueHandler(params VenueHandlerParams) *VenueHandler {
	return &VenueHandler{
		venueUC:   params.VenueUC,
		checkinUC: params.CheckinUC,
		logger:    params.Logger,
	}
}

// List returns active venues with live stats, optionally filtered by district
// or type and distance-sorted around ?lat=&lng=.
func (h *VenueHandler) List(c echo.Context) error {
	opts := usecase.ListVenuesOptions{
		District: c.QueryParam("district"),
		Type:     c.QueryParam("type"),
	}

	latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return response.BadRequest(c, "INVALID_INPUT", "lat and lng must be decimal coordinates")
		}

		opts.Near = &usecase.GeoPoint{Latitude: lat, Longitude: lng}
	}

	venues, err := h.venueUC.ListVenues(c.Request().Context(), opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, venues, "Venues retrieved successfully")
}

// Get returns one venue with live stats.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	venue, err := h.venueUC.GetVenue(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, venue, "Venue retrieved successfully")
}

// Events returns the venue's events in date order.
func (h *VenueHandler) Events(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	events, err := h.venueUC.Events(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, events, "Events retrieved successfully")
}

// Menu returns the venue's menu items.
func (h *VenueHandler) Menu(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	menu, err := h.venueUC.Menu(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, menu, "Menu retrieved successfully")
}

// People returns the venue's live visible guest list.
func (h *VenueHandler) People(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	people, err := h.checkinUC.PeopleIn(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, people, "People retrieved successfully")
}

// Analytics returns the owner-facing daily dashboard.
func (h *VenueHandler) Analytics(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	analytics, err := h.venueUC.Analytics(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "Analytics retrieved successfully")
}

// QRCode renders the venue's check-in QR code as a PNG image.
func (h *VenueHandler) QRCode(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.venueUC.CheckinQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
