package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shareit/backend/internal/adapters/cache"
	"github.com/shareit/backend/internal/adapters/database"
	"github.com/shareit/backend/internal/adapters/events"
	"github.com/shareit/backend/internal/api/handlers"
	"github.com/shareit/backend/internal/api/routes"
	"github.com/shareit/backend/internal/application/services"
	"github.com/shareit/backend/internal/domain/providers"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
	"github.com/shareit/backend/internal/infrastructure/clients/redis"
	"github.com/shareit/backend/internal/infrastructure/observability"
	"github.com/shareit/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client; the server works without it
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache and events")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Msg("Redis client initialized successfully")
		}
	}

	// Initialize adapters
	var userRepo repositories.UserRepository = database.NewUserAdapter(pgClient)
	itemRepo := database.NewItemAdapter(pgClient)
	requestRepo := database.NewItemRequestAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	commentRepo := database.NewCommentAdapter(pgClient)
	transactor := database.NewTransactor(pgClient)

	var eventBus providers.EventBus
	if redisClient != nil {
		userRepo = database.NewCachedUserAdapter(userRepo, cache.NewRedisAdapter(redisClient), cfg.Redis.UserCacheTTL, metrics)
		log.Info().Msg("User adapter wrapped with caching layer")

		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized successfully")
	}

	// Initialize services
	userService := services.NewUserService(userRepo, transactor)
	commentService := services.NewCommentService(commentRepo, userRepo, itemRepo, bookingRepo, transactor)
	itemService := services.NewItemService(itemRepo, userRepo, requestRepo, bookingRepo, commentService, transactor)
	itemRequestService := services.NewItemRequestService(requestRepo, userRepo, itemRepo, transactor)
	bookingService := services.NewBookingService(bookingRepo, itemRepo, userRepo, transactor)

	if eventBus != nil {
		bookingService.SetEventBus(eventBus, metrics)
		go logBookingEvents(ctx, eventBus)
	}

	// Set up router
	router := routes.NewRouter(
		handlers.NewUserHandler(userService),
		handlers.NewItemHandler(itemService, commentService),
		handlers.NewItemRequestHandler(itemRequestService),
		handlers.NewBookingHandler(bookingService),
		cfg.Gateway.AllowedOrigins,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	cancel()
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}

// logBookingEvents writes every booking lifecycle event to the log until ctx ends
func logBookingEvents(ctx context.Context, eventBus providers.EventBus) {
	eventChan, err := eventBus.Subscribe(ctx, providers.EventChannelBookings)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to subscribe to booking events")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			log.Info().
				Str("event_id", event.ID).
				Str("type", string(event.Type)).
				Int64("booking_id", event.BookingID).
				Int64("item_id", event.ItemID).
				Str("status", string(event.Status)).
				Msg("Booking event")
		}
	}
}
