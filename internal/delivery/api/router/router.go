// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"canteen/config"
	"canteen/internal/delivery/api/middleware"
	"canteen/internal/delivery/api/router/handler"
	"canteen/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MenuHandler         *handler.MenuHandler
	ProfileHandler      *handler.ProfileHandler
	OrderHandler        *handler.OrderHandler
	NotificationHandler *handler.NotificationHandler
	RealtimeHandler     *handler.RealtimeHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Recorder            *metrics.Recorder
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	menuHandler         *handler.MenuHandler
	profileHandler      *handler.ProfileHandler
	orderHandler        *handler.OrderHandler
	notificationHandler *handler.NotificationHandler
	realtimeHandler     *handler.RealtimeHandler
	authMiddleware      *middleware.AuthMiddleware
	recorder            *metrics.Recorder
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		menuHandler:         params.MenuHandler,
		profileHandler:      params.ProfileHandler,
		orderHandler:        params.OrderHandler,
		notificationHandler: params.NotificationHandler,
		realtimeHandler:     params.RealtimeHandler,
		authMiddleware:      params.AuthMiddleware,
		recorder:            params.Recorder,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics != nil && r.config.Metrics.Enabled && r.recorder != nil {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.recorder.Handler()))
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	// Profile routes are reachable before signup completes
	profileGroup := apiV1.Group("/profile")
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.POST("", r.profileHandler.CompleteSignup)
	}

	// Everything else needs a profile to resolve the caller's role
	member := apiV1.Group("", r.authMiddleware.RequireProfile)

	member.GET("/menu", r.menuHandler.ListMenu)

	ordersGroup := member.Group("/orders")
	{
		ordersGroup.POST("", r.orderHandler.PlaceOrder)
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/qr", r.orderHandler.PickupQR)

		// Counter operations
		ordersGroup.PATCH("/:id/status", r.orderHandler.AdvanceStatus, r.authMiddleware.RequireOrderManager)
		ordersGroup.POST("/pickup", r.orderHandler.ConfirmPickup, r.authMiddleware.RequireOrderManager)
	}

	notificationsGroup := member.Group("/notifications")
	{
		notificationsGroup.GET("", r.notificationHandler.ListNotifications)
		notificationsGroup.GET("/unread-count", r.notificationHandler.UnreadCount)
		notificationsGroup.POST("/read-all", r.notificationHandler.MarkAllRead)
		notificationsGroup.POST("/:id/read", r.notificationHandler.MarkRead)
	}

	member.GET("/realtime", r.realtimeHandler.Stream)
}
