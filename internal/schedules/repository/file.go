package repository

import (
	"context"
	"fmt"
	"sync"

	scheduleserrors "cinebook/internal/schedules/errors"
	"cinebook/pkg/model"
	"cinebook/pkg/storage"
)

type scheduleDocument struct {
	Schedule []*model.Screening `json:"schedule"`
}

type fileScheduleRepository struct {
	path string

	mu         sync.RWMutex
	screenings []*model.Screening
}

func NewFileScheduleRepository(path string) (ScheduleRepository, error) {
	var doc scheduleDocument
	if err := storage.LoadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to load schedule store: %w", err)
	}

	return &fileScheduleRepository{
		path:       path,
		screenings: doc.Schedule,
	}, nil
}

func (r *fileScheduleRepository) FindAll(_ context.Context) ([]*model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Screening, len(r.screenings))
	for i, s := range r.screenings {
		copied := *s
		out[i] = &copied
	}
	return out, nil
}

func (r *fileScheduleRepository) FindByMovie(_ context.Context, movieID string) ([]*model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Screening
	for _, s := range r.screenings {
		if s.MovieID == movieID {
			copied := *s
			out = append(out, &copied)
		}
	}
	if len(out) == 0 {
		return nil, scheduleserrors.ErrNotFound
	}
	return out, nil
}

func (r *fileScheduleRepository) FindByMovieAndDate(_ context.Context, movieID, date string) (*model.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.screenings {
		if s.MovieID == movieID && s.Date == date {
			copied := *s
			return &copied, nil
		}
	}
	return nil, scheduleserrors.ErrNotFound
}

func (r *fileScheduleRepository) Create(_ context.Context, screening *model.Screening) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.screenings {
		if s.MovieID == screening.MovieID && s.Date == screening.Date && s.Time == screening.Time {
			return scheduleserrors.ErrAlreadyExists
		}
	}

	copied := *screening
	r.screenings = append(r.screenings, &copied)
	return r.flush()
}

func (r *fileScheduleRepository) Delete(_ context.Context, movieID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.screenings[:0]
	deleted := 0
	for _, s := range r.screenings {
		if s.MovieID == movieID && s.Date == date {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	if deleted == 0 {
		return scheduleserrors.ErrNotFound
	}

	r.screenings = kept
	return r.flush()
}

// flush must be called with the write lock held.
func (r *fileScheduleRepository) flush() error {
	return storage.SaveJSON(r.path, scheduleDocument{Schedule: r.screenings})
}
