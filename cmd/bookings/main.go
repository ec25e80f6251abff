package main

import (
	"cinebook/internal/bookings/handler"
	"cinebook/internal/bookings/repository"
	"cinebook/internal/bookings/service"
	"cinebook/internal/bookings/validator"
	"cinebook/internal/health"
	"cinebook/pkg/app"
	"cinebook/pkg/client"
	"cinebook/pkg/config"
	"cinebook/pkg/events"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Bookings service")

	var (
		repo   repository.BookingRepository
		pinger health.Pinger
	)
	switch cfg.StorageBackend {
	case config.BackendMongo:
		cfg.SetMongo()
		repo = repository.NewMongoBookingRepository(cfg)
		pinger = health.MongoPinger(cfg.Client.Mongo)
	default:
		fileRepo, err := repository.NewFileBookingRepository(cfg.DataFile("bookings"))
		if err != nil {
			cfg.Log.Fatal("Failed to open bookings store", "error", err)
		}
		repo = fileRepo
	}

	movies := client.NewMovieClient(cfg.MovieServiceURL, cfg.ClientTimeout, cfg.Log)
	screenings := client.NewScheduleClient(cfg.ScheduleServiceURL, cfg.ClientTimeout, cfg.Log)
	users := client.NewUserClient(cfg.UserServiceURL, cfg.ClientTimeout, cfg.Log)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaBookingEventsTopic, ServiceName, cfg.Log)

	bookingService := service.NewBookingService(
		repo,
		movies,
		screenings,
		users,
		validator.NewBookingValidator(),
		publisher,
		cfg,
	)
	cfg.Log.Info("Booking service initialized", "storage_backend", cfg.StorageBackend)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log), pinger)
	serverApp.Run()
}
