// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"tastebud/config"
	"tastebud/internal/delivery/api/middleware"
	"tastebud/internal/delivery/api/router/handler"
	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	defaultAutoOrderRate  = 0.2
	defaultAutoOrderBurst = 3
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	CatalogHandler *handler.CatalogHandler
	OrderHandler   *handler.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	profileHandler *handler.ProfileHandler
	catalogHandler *handler.CatalogHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		profileHandler: params.ProfileHandler,
		catalogHandler: params.CatalogHandler,
		orderHandler:   params.OrderHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/customer", r.userHandler.RegisterCustomer)
		authGroup.POST("/register/merchant", r.userHandler.RegisterMerchant)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	apiV1 := e.Group("/api/v1")

	// Public catalog routes
	{
		apiV1.POST("/restaurants/resolve", r.catalogHandler.ResolveRestaurants)
		apiV1.GET("/restaurants/nearby", r.catalogHandler.NearbyRestaurants)
		apiV1.GET("/restaurants/:id/items", r.catalogHandler.ListItems)
		apiV1.GET("/tags", r.catalogHandler.ListTags)
	}

	authed := apiV1.Group("", r.authMiddleware.Authenticate)
	{
		authed.GET("/me", r.userHandler.Me)
		authed.GET("/profile", r.profileHandler.GetProfile)
		authed.PUT("/profile", r.profileHandler.UpdateProfile)
		authed.POST("/preferences/mute", r.profileHandler.MutePreference)
	}

	ordersGroup := authed.Group("/orders")
	{
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.POST("/:id/cancel", r.orderHandler.CancelOrder)
		ordersGroup.GET("/:id/pickup-qr", r.orderHandler.PickupQR)

		customerOnly := r.authMiddleware.RequireRole(entity.RoleCustomer)
		ordersGroup.POST("", r.orderHandler.CreateOrder, customerOnly)
		ordersGroup.POST("/auto", r.orderHandler.AutoOrder, customerOnly, r.autoOrderLimiter())
	}

	// Merchant routes that require the "merchant" role
	merchantGroup := authed.Group("/merchant", r.authMiddleware.RequireRole(entity.RoleMerchant))
	{
		merchantGroup.POST("/restaurants/:id/items", r.catalogHandler.CreateItem)
		merchantGroup.PUT("/restaurants/:id/items/:itemId", r.catalogHandler.UpdateItem)
	}
}

// autoOrderLimiter throttles the auto order endpoint per user, since every call reaches the recommender.
func (r *router) autoOrderLimiter() echo.MiddlewareFunc {
	limit := rate.Limit(defaultAutoOrderRate)
	if r.config.AutoOrder != nil && r.config.AutoOrder.RateLimit > 0 {
		limit = rate.Limit(r.config.AutoOrder.RateLimit)
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:  limit,
		Burst: defaultAutoOrderBurst,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if userID, ok := deliverycontext.GetUserID(c); ok {
				return userID.String(), nil
			}

			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many auto order requests, slow down")
		},
	})
}
