// Package router contains routing setup for the admin API delivery.
package router

import (
	"pulse/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	VenueAdminHandler *handler.VenueAdminHandler
	BroadcastHandler  *handler.BroadcastHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	venueAdminHandler *handler.VenueAdminHandler
	broadcastHandler  *handler.BroadcastHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		venueAdminHandler: params.VenueAdminHandler,
		broadcastHandler:  params.BroadcastHandler,
	}
}

// RegisterRoutes sets up all the admin routes.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	adminGroup := e.Group("/admin")
	{
		adminGroup.POST("/venues", r.venueAdminHandler.CreateVenue)
		adminGroup.PATCH("/venues/:id", r.venueAdminHandler.UpdateVenue)
		adminGroup.POST("/venues/:id/events", r.venueAdminHandler.CreateEvent)
		adminGroup.POST("/venues/:id/menu", r.venueAdminHandler.CreateMenuItem)
		adminGroup.POST("/notifications/broadcast", r.broadcastHandler.Broadcast)
	}
}
