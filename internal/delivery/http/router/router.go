// Package router contains routing setup for the public HTTP delivery.
package router

import (
	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	VenueHandler        *handler.VenueHandler
	CheckinHandler      *handler.CheckinHandler
	MatchHandler        *handler.MatchHandler
	ChatHandler         *handler.ChatHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	venueHandler        *handler.VenueHandler
	checkinHandler      *handler.CheckinHandler
	matchHandler        *handler.MatchHandler
	chatHandler         *handler.ChatHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		venueHandler:        params.VenueHandler,
		checkinHandler:      params.CheckinHandler,
		matchHandler:        params.MatchHandler,
		chatHandler:         params.ChatHandler,
		notificationHandler: params.NotificationHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/verify-phone", r.userHandler.VerifyPhone)
		authGroup.POST("/complete-profile", r.userHandler.CompleteProfile)
	}

	// Routes acting on the authenticated account
	meGroup := api.Group("/users/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.userHandler.Me)
		meGroup.PATCH("/subscription", r.userHandler.UpdateSubscription)
	}

	// Venue discovery routes
	venuesGroup := api.Group("/venues")
	{
		venuesGroup.GET("", r.venueHandler.List)
		venuesGroup.GET("/:id", r.venueHandler.Get)
		venuesGroup.GET("/:id/events", r.venueHandler.Events)
		venuesGroup.GET("/:id/menu", r.venueHandler.Menu)
		venuesGroup.GET("/:id/people", r.venueHandler.People)
		venuesGroup.GET("/:id/analytics", r.venueHandler.Analytics)
		venuesGroup.GET("/:id/qrcode", r.venueHandler.QRCode)
		venuesGroup.GET("/:venueId/match-candidates/:userId", r.matchHandler.Candidates)
	}

	// Presence routes
	checkinsGroup := api.Group("/checkins")
	{
		checkinsGroup.POST("", r.checkinHandler.CheckIn)
		checkinsGroup.POST("/qr", r.checkinHandler.CheckInByQR)
		checkinsGroup.POST("/:userId/:venueId/checkout", r.checkinHandler.CheckOut)
	}

	// Notification routes
	notificationsGroup := api.Group("/notifications")
	{
		notificationsGroup.GET("/:userId", r.notificationHandler.List)
		notificationsGroup.GET("/:userId/unread-count", r.notificationHandler.UnreadCount)
		notificationsGroup.PATCH("/:id/read", r.notificationHandler.MarkRead)
		notificationsGroup.PATCH("/:userId/read-all", r.notificationHandler.MarkAllRead)
	}

	// Matching and messaging routes
	api.POST("/matches", r.matchHandler.Swipe)
	api.GET("/users/:userId/matches", r.matchHandler.MatchesForUser)
	api.GET("/users/:userId/chats", r.chatHandler.ChatsForUser)
	api.GET("/chats/:chatId/messages", r.chatHandler.Messages)
	api.POST("/messages", r.chatHandler.Send)
	api.PATCH("/chats/:chatId/read/:userId", r.chatHandler.MarkRead)
}
