package main

import (
	"cinebook/internal/health"
	"cinebook/internal/users/handler"
	"cinebook/internal/users/repository"
	"cinebook/internal/users/service"
	"cinebook/pkg/app"
	"cinebook/pkg/config"
)

const ServiceName = "users"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Users service")

	var (
		repo   repository.UserRepository
		pinger health.Pinger
	)
	switch cfg.StorageBackend {
	case config.BackendMongo:
		cfg.SetMongo()
		repo = repository.NewMongoUserRepository(cfg)
		pinger = health.MongoPinger(cfg.Client.Mongo)
	default:
		fileRepo, err := repository.NewFileUserRepository(cfg.DataFile("users"))
		if err != nil {
			cfg.Log.Fatal("Failed to open users store", "error", err)
		}
		repo = fileRepo
	}

	userService := service.NewUserService(repo, cfg)
	cfg.Log.Info("User service initialized", "storage_backend", cfg.StorageBackend)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewUserHandler(userService, cfg.Log), pinger)
	serverApp.Run()
}
