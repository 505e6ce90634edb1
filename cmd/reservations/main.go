package main

import (
	"context"
	"time"

	"parkeo/internal/reservations/events"
	"parkeo/internal/reservations/handler"
	"parkeo/internal/reservations/repository"
	"parkeo/internal/reservations/service"
	"parkeo/internal/reservations/validator"
	"parkeo/pkg/app"
	"parkeo/pkg/config"

	"github.com/joho/godotenv"
)

const ServiceName = "reservations"

func main() {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")

	reservationService, publisher := initServices(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.ReservationService, events.Publisher) {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewReservationLockRepository(cfg)
	spaceRepo := repository.NewMongoSpaceRepository(cfg)
	documentRepo := repository.NewMongoDocumentRepository(cfg)

	bootstrap(cfg, spaceRepo, lockRepo)

	publisher, err := events.NewPublisher(cfg, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}

	reservationService := service.NewReservationService(
		reservationRepo,
		spaceRepo,
		lockRepo,
		documentRepo,
		reservationValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService, publisher
}

// bootstrap seeds the fixed space inventory and the lock TTL index. Both
// operations are idempotent across restarts.
func bootstrap(cfg *config.Config, spaceRepo repository.SpaceRepository, lockRepo repository.ReservationLockRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := spaceRepo.EnsureInventory(ctx, cfg.SpaceCount); err != nil {
		cfg.Log.Fatal("Failed to seed space inventory", "error", err)
	}
	if err := lockRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to create lock indexes", "error", err)
	}

	cfg.Log.Info("Space inventory ready", "space_count", cfg.SpaceCount)
}
