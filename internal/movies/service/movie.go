package service

import (
	"context"
	"errors"

	movieserrors "cinebook/internal/movies/errors"
	"cinebook/internal/movies/repository"
	"cinebook/internal/movies/validator"
	"cinebook/pkg/config"
	apperrors "cinebook/pkg/errors"
	"cinebook/pkg/model"
)

type MovieService interface {
	GetAll(ctx context.Context) ([]*model.Movie, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	GetByTitle(ctx context.Context, title string) (*model.Movie, error)
	Create(ctx context.Context, movie *model.Movie) error
	UpdateRating(ctx context.Context, id string, rating float64) (*model.Movie, error)
	Delete(ctx context.Context, id string) (*model.Movie, error)
}

type movieService struct {
	repo      repository.MovieRepository
	validator *validator.MovieValidator
	cfg       *config.Config
}

func NewMovieService(repo repository.MovieRepository, movieValidator *validator.MovieValidator, cfg *config.Config) MovieService {
	return &movieService{
		repo:      repo,
		validator: movieValidator,
		cfg:       cfg,
	}
}

func (s *movieService) GetAll(ctx context.Context) ([]*model.Movie, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve movies", err)
	}
	return movies, nil
}

func (s *movieService) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Movie", id)
		}
		return nil, apperrors.Internal("Failed to retrieve movie", err)
	}
	return movie, nil
}

func (s *movieService) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	if title == "" {
		return nil, apperrors.InvalidInput("title query parameter is required")
	}

	movie, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Movie with this title")
		}
		return nil, apperrors.Internal("Failed to retrieve movie", err)
	}
	return movie, nil
}

func (s *movieService) Create(ctx context.Context, movie *model.Movie) error {
	if err := s.validator.Validate(movie); err != nil {
		s.cfg.Log.Warn("Movie validation failed", "error", err)
		return apperrors.Validation("Invalid movie", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		if errors.Is(err, movieserrors.ErrAlreadyExists) {
			return apperrors.Conflict("Movie id already exists")
		}
		return apperrors.Internal("Failed to create movie", err)
	}

	s.cfg.Log.Info("Movie created successfully", "id", movie.ID, "title", movie.Title)
	return nil
}

func (s *movieService) UpdateRating(ctx context.Context, id string, rating float64) (*model.Movie, error) {
	if rating < 0 || rating > 10 {
		return nil, apperrors.InvalidInput("rating must be between 0 and 10")
	}

	movie, err := s.repo.UpdateRating(ctx, id, rating)
	if err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Movie", id)
		}
		return nil, apperrors.Internal("Failed to update movie rating", err)
	}

	s.cfg.Log.Info("Movie rating updated", "id", id, "rating", rating)
	return movie, nil
}

func (s *movieService) Delete(ctx context.Context, id string) (*model.Movie, error) {
	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Movie", id)
		}
		return nil, apperrors.Internal("Failed to delete movie", err)
	}

	s.cfg.Log.Info("Movie deleted successfully", "id", id)
	return movie, nil
}
