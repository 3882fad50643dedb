package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"xeghep/internal/app"
	"xeghep/internal/config"
	"xeghep/internal/events"
	"xeghep/internal/handler"
	"xeghep/internal/intent"
	"xeghep/internal/logging"
	internalRedis "xeghep/internal/redis"
	"xeghep/internal/repository"
	"xeghep/internal/repository/memory"
	"xeghep/internal/repository/postgres"
	"xeghep/internal/service"
	"xeghep/internal/state"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	logger := logging.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.WithError(err).Error("failed to initialize New Relic")
		} else {
			logger.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	var db *sql.DB
	if cfg.Storage.Backend == config.StoragePostgres {
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to database")
		}
		defer db.Close()
		logger.Info("Connected to PostgreSQL")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to redis")
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis")
	}

	slots, err := newSlotStore(ctx, cfg.Storage.Backend, db, redisClient)
	if err != nil {
		logger.WithError(err).Fatal("failed to prepare slot storage")
	}
	logger.WithField("backend", cfg.Storage.Backend).Info("slot storage ready")

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.WithField("topic", cfg.Kafka.Topic).Info("publishing domain events to Kafka")
	}
	defer publisher.Close()

	store := state.Open(ctx, slots, logger, time.Now())

	// Wire dependencies.
	server := wireServer(store, redisClient, publisher, nrApp, cfg, logger)

	// Start server in goroutine.
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("Server exited")
}

// newSlotStore selects the persistence backend for the collection slots.
func newSlotStore(ctx context.Context, backend string, db *sql.DB, redisClient *redis.Client) (repository.SlotStore, error) {
	switch backend {
	case config.StoragePostgres:
		store := postgres.NewSlotStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageRedis:
		return internalRedis.NewSlotStore(redisClient), nil
	default:
		return memory.NewSlotStore(), nil
	}
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	store *state.Store,
	redisClient *redis.Client,
	publisher events.Publisher,
	nrApp *newrelic.Application,
	cfg *config.Config,
	logger *logrus.Logger,
) *http.Server {
	// Redis-backed coordination is optional; nil interfaces disable it.
	var (
		lockStore     internalRedis.LockStoreInterface
		responseCache internalRedis.ResponseCacheInterface
	)
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
		responseCache = internalRedis.NewResponseCache(redisClient)
	}

	var parser service.IntentParser = intent.NopParser{}
	if cfg.Intent.APIKey != "" {
		parser = intent.NewGeminiParser(cfg.Intent.APIKey, cfg.Intent.Model, cfg.Intent.Endpoint, cfg.Intent.Timeout, logger)
	}

	// Initialize services.
	notificationService := service.NewNotificationService(cfg.Notification.Display, logger)
	fleetService := service.NewFleetService(store, logger)
	rideService := service.NewRideService(store, parser, logger)
	bookingService := service.NewBookingService(store, notificationService, publisher, logger)
	requestService := service.NewRequestService(store, lockStore, notificationService, publisher, logger)
	reportService := service.NewReportService(store)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		FleetHandler:   handler.NewFleetHandler(fleetService),
		RideHandler:    handler.NewRideHandler(rideService, bookingService),
		BookingHandler: handler.NewBookingHandler(bookingService),
		RequestHandler: handler.NewRequestHandler(requestService),
		AdminHandler:   handler.NewAdminHandler(bookingService, requestService, reportService, notificationService),
		ResponseCache:  responseCache,
		IdempotencyTTL: cfg.Server.IdempotencyTTL,
		NewRelicApp:    nrApp,
		Logger:         logger,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
