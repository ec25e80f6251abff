package service

import (
	"context"
	"errors"

	scheduleserrors "cinebook/internal/schedules/errors"
	"cinebook/internal/schedules/repository"
	"cinebook/internal/schedules/validator"
	"cinebook/pkg/config"
	apperrors "cinebook/pkg/errors"
	"cinebook/pkg/model"
)

type ScheduleService interface {
	GetAll(ctx context.Context) ([]*model.Screening, error)
	GetByMovie(ctx context.Context, movieID string) ([]*model.Screening, error)
	GetByMovieAndDate(ctx context.Context, movieID, date string) (*model.Screening, error)
	Create(ctx context.Context, screening *model.Screening) error
	Delete(ctx context.Context, movieID, date string) error
}

type scheduleService struct {
	repo      repository.ScheduleRepository
	validator *validator.ScheduleValidator
	cfg       *config.Config
}

func NewScheduleService(repo repository.ScheduleRepository, scheduleValidator *validator.ScheduleValidator, cfg *config.Config) ScheduleService {
	return &scheduleService{
		repo:      repo,
		validator: scheduleValidator,
		cfg:       cfg,
	}
}

func (s *scheduleService) GetAll(ctx context.Context) ([]*model.Screening, error) {
	screenings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve schedule", err)
	}
	return screenings, nil
}

func (s *scheduleService) GetByMovie(ctx context.Context, movieID string) ([]*model.Screening, error) {
	screenings, err := s.repo.FindByMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, scheduleserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Screenings for movie", movieID)
		}
		return nil, apperrors.Internal("Failed to retrieve screenings", err)
	}
	return screenings, nil
}

func (s *scheduleService) GetByMovieAndDate(ctx context.Context, movieID, date string) (*model.Screening, error) {
	screening, err := s.repo.FindByMovieAndDate(ctx, movieID, date)
	if err != nil {
		if errors.Is(err, scheduleserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Screening")
		}
		return nil, apperrors.Internal("Failed to retrieve screening", err)
	}
	return screening, nil
}

func (s *scheduleService) Create(ctx context.Context, screening *model.Screening) error {
	if err := s.validator.Validate(screening); err != nil {
		s.cfg.Log.Warn("Screening validation failed", "error", err)
		return apperrors.Validation("Invalid screening", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, screening); err != nil {
		if errors.Is(err, scheduleserrors.ErrAlreadyExists) {
			return apperrors.Conflict("Screening already exists")
		}
		return apperrors.Internal("Failed to create screening", err)
	}

	s.cfg.Log.Info("Screening created successfully", "movieid", screening.MovieID, "date", screening.Date, "time", screening.Time)
	return nil
}

func (s *scheduleService) Delete(ctx context.Context, movieID, date string) error {
	if err := s.repo.Delete(ctx, movieID, date); err != nil {
		if errors.Is(err, scheduleserrors.ErrNotFound) {
			return apperrors.NotFound("Screening")
		}
		return apperrors.Internal("Failed to delete screening", err)
	}

	s.cfg.Log.Info("Screening deleted successfully", "movieid", movieID, "date", date)
	return nil
}
