package main

import (
	"cinebook/internal/health"
	"cinebook/internal/movies/handler"
	"cinebook/internal/movies/repository"
	"cinebook/internal/movies/service"
	"cinebook/internal/movies/validator"
	"cinebook/pkg/app"
	"cinebook/pkg/config"
)

const ServiceName = "movies"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Movies service")

	var (
		repo   repository.MovieRepository
		pinger health.Pinger
	)
	switch cfg.StorageBackend {
	case config.BackendMongo:
		cfg.SetMongo()
		repo = repository.NewMongoMovieRepository(cfg)
		pinger = health.MongoPinger(cfg.Client.Mongo)
	default:
		fileRepo, err := repository.NewFileMovieRepository(cfg.DataFile("movies"))
		if err != nil {
			cfg.Log.Fatal("Failed to open movies store", "error", err)
		}
		repo = fileRepo
	}

	movieService := service.NewMovieService(repo, validator.NewMovieValidator(), cfg)
	cfg.Log.Info("Movie service initialized", "storage_backend", cfg.StorageBackend)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewMovieHandler(movieService, cfg.Log), pinger)
	serverApp.Run()
}
