package main

import (
	"cinebook/internal/health"
	"cinebook/internal/schedules/handler"
	"cinebook/internal/schedules/repository"
	"cinebook/internal/schedules/service"
	"cinebook/internal/schedules/validator"
	"cinebook/pkg/app"
	"cinebook/pkg/config"
)

const ServiceName = "schedules"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Schedules service")

	var (
		repo   repository.ScheduleRepository
		pinger health.Pinger
	)
	switch cfg.StorageBackend {
	case config.BackendMongo:
		cfg.SetMongo()
		repo = repository.NewMongoScheduleRepository(cfg)
		pinger = health.MongoPinger(cfg.Client.Mongo)
	default:
		fileRepo, err := repository.NewFileScheduleRepository(cfg.DataFile("schedule"))
		if err != nil {
			cfg.Log.Fatal("Failed to open schedule store", "error", err)
		}
		repo = fileRepo
	}

	scheduleService := service.NewScheduleService(repo, validator.NewScheduleValidator(), cfg)
	cfg.Log.Info("Schedule service initialized", "storage_backend", cfg.StorageBackend)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewScheduleHandler(scheduleService, cfg.Log), pinger)
	serverApp.Run()
}
