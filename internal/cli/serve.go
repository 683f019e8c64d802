package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	availabilityhandler "tabletime/internal/availability/handler"
	availabilityservice "tabletime/internal/availability/service"
	"tabletime/internal/bookings/events"
	bookinghandler "tabletime/internal/bookings/handler"
	"tabletime/internal/bookings/repository"
	bookingservice "tabletime/internal/bookings/service"
	"tabletime/internal/bookings/validator"
	healthhandler "tabletime/internal/health/handler"
	restauranthandler "tabletime/internal/restaurants/handler"
	restaurantservice "tabletime/internal/restaurants/service"
	"tabletime/pkg/app"
	"tabletime/pkg/client"
	"tabletime/pkg/config"
	"tabletime/pkg/contracts"
	"tabletime/pkg/kafka"
	kafka_config "tabletime/pkg/kafka/config"
	kafka_middleware "tabletime/pkg/kafka/middleware"
	"tabletime/pkg/logger"
	"tabletime/pkg/middleware"
	"tabletime/pkg/otelx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, config.Load(ServiceName))
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := cfg.Log
	log.Info("Starting TableTime server")

	shutdownTracing, err := otelx.Setup(ctx, otelx.Config{
		Enabled:      cfg.OtelEnabled,
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OtelEndpoint,
		SampleRatio:  cfg.OtelSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	application := app.NewApplication(cfg)
	application.OnShutdown("tracing", shutdownTracing)

	clients := client.NewClient()
	application.OnShutdown("clients", clients.Close)

	repo := buildRepository(cfg, clients)
	reportStore(ctx, log, repo)

	if cfg.RedisURL != "" {
		clients.SetRedis(log, cfg.RedisURL, cfg.MongoConnTimeout)
		application.UseIdempotencyStore(middleware.NewRedisIdempotencyStore(clients.Redis, cfg.IdempotencyTTL, ServiceName+":idem"))
		log.Info("Idempotency cache backed by Redis")
	}

	publisher, err := buildPublisher(cfg)
	if err != nil {
		return err
	}
	application.OnShutdown("booking events", func(context.Context) error { return publisher.Close() })

	healthHandler, appHandlers := buildHandlers(cfg, repo, publisher)
	application.SetApp(healthHandler, appHandlers...)

	return application.Run(ctx)
}

// buildHandlers wires the restaurant directory, availability engine and
// booking engine over repo.
func buildHandlers(cfg *config.Config, repo repository.BookingRepository, publisher events.Publisher) (contracts.Handler, []contracts.Handler) {
	log := cfg.Log
	directory := restaurantservice.NewSeededDirectory(log)
	availabilityService := availabilityservice.NewAvailabilityService(repo, cfg.SlotTemplate(), cfg.CapacityPerSlot, log)
	bookingService := bookingservice.NewBookingService(
		repo,
		directory,
		validator.NewBookingValidator(cfg.CapacityPerSlot, log),
		cfg.SlotTemplate(),
		log,
		bookingservice.WithFaultPolicy(bookingservice.RandomFaults(cfg.FaultRate)),
		bookingservice.WithLocation(cfg.Location()),
		bookingservice.WithHorizonDays(cfg.BookingHorizonDays),
		bookingservice.WithPublisher(publisher),
	)
	log.Info("Booking service initialized",
		"store", cfg.StoreBackend,
		"capacity_per_slot", cfg.CapacityPerSlot,
		"horizon_days", cfg.BookingHorizonDays,
	)

	latency := cfg.Latency()
	return healthhandler.NewHealthHandler(repo, log, latency), []contracts.Handler{
		restauranthandler.NewRestaurantHandler(directory, log, latency),
		availabilityhandler.NewAvailabilityHandler(availabilityService, log, latency),
		bookinghandler.NewBookingHandler(bookingService, log, latency),
	}
}

func reportStore(ctx context.Context, log *logger.Logger, repo repository.BookingRepository) {
	count, err := repo.Count(ctx)
	if err != nil {
		log.Warn("Could not count stored bookings", "error", err)
		return
	}
	log.Info("Booking store ready", "bookings", count)
}

func buildRepository(cfg *config.Config, clients *client.Client) repository.BookingRepository {
	if cfg.StoreBackend != config.StoreMongo {
		cfg.Log.Info("Using in-memory booking store; bookings last for the process lifetime")
		return repository.NewMemoryBookingRepository()
	}

	clients.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	db := clients.Mongo.Database(cfg.MongoDatabaseName)
	cfg.Log.Info("Using MongoDB booking store", "database", cfg.MongoDatabaseName)
	return repository.NewMongoBookingRepository(db, cfg.ReadTimeout, cfg.WriteTimeout)
}

func buildPublisher(cfg *config.Config) (events.Publisher, error) {
	if !cfg.KafkaEnabled {
		return events.NewNoopPublisher(), nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid kafka configuration: %w", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Publishing booking events to Kafka", "topic", cfg.BookingEventsTopic)
	return events.NewKafkaPublisher(producer, ServiceName), nil
}
