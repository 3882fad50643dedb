package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"xeghep/internal/handler"
	"xeghep/internal/middleware"
	"xeghep/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	FleetHandler   *handler.FleetHandler
	RideHandler    *handler.RideHandler
	BookingHandler *handler.BookingHandler
	RequestHandler *handler.RequestHandler
	AdminHandler   *handler.AdminHandler
	ResponseCache  redis.ResponseCacheInterface // nil disables idempotent replay
	IdempotencyTTL time.Duration
	NewRelicApp    *newrelic.Application
	Logger         logrus.FieldLogger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Observability(deps.Logger))
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.ResponseCache, deps.IdempotencyTTL, deps.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Roster routes.
		drivers := v1.Group("/drivers")
		{
			drivers.GET("", deps.FleetHandler.ListDrivers)
			drivers.POST("", deps.FleetHandler.CreateDriver)
			drivers.DELETE("/:id", deps.FleetHandler.DeleteDriver)
		}
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", deps.FleetHandler.ListVehicles)
			vehicles.POST("", deps.FleetHandler.CreateVehicle)
			vehicles.DELETE("/:id", deps.FleetHandler.DeleteVehicle)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.GET("", deps.RideHandler.ListAvailable)
			rides.POST("", deps.RideHandler.CreateRide)
			rides.POST("/search", deps.RideHandler.Search)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/bookings", deps.RideHandler.BookSeats)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.GET("", deps.BookingHandler.ListBookings)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.POST("/:id/status", deps.BookingHandler.UpdateStatus)
			bookings.DELETE("/:id", deps.BookingHandler.DeleteBooking)
		}

		// Ride request routes.
		requests := v1.Group("/requests")
		{
			requests.GET("", deps.RequestHandler.ListRequests)
			requests.POST("", deps.RequestHandler.Submit)
			requests.POST("/:id/assign", deps.RequestHandler.Assign)
			requests.POST("/:id/cancel", deps.RequestHandler.Cancel)
			requests.DELETE("/:id", deps.RequestHandler.Delete)
		}

		// Operator routes.
		v1.GET("/admin/pending", deps.AdminHandler.Pending)
		v1.GET("/reports", deps.AdminHandler.Report)
		v1.GET("/notifications", deps.AdminHandler.ListNotifications)
		v1.DELETE("/notifications/:id", deps.AdminHandler.DismissNotification)
	}

	return router
}
