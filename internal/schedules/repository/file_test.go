package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	scheduleserrors "cinebook/internal/schedules/errors"
	"cinebook/pkg/model"
)

func newTestStore(t *testing.T) ScheduleRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	repo, err := NewFileScheduleRepository(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return repo
}

func screening(movieID, date, time string) *model.Screening {
	return &model.Screening{MovieID: movieID, Date: date, Time: time}
}

func TestScheduleCreateAndLookup(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.Create(ctx, screening("movie-1", "20151201", "20:00")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, screening("movie-1", "20151202", "18:30")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byMovie, err := repo.FindByMovie(ctx, "movie-1")
	if err != nil {
		t.Fatalf("FindByMovie failed: %v", err)
	}
	if len(byMovie) != 2 {
		t.Errorf("expected both screenings, got %d", len(byMovie))
	}

	got, err := repo.FindByMovieAndDate(ctx, "movie-1", "20151202")
	if err != nil {
		t.Fatalf("FindByMovieAndDate failed: %v", err)
	}
	if got.Time != "18:30" {
		t.Errorf("unexpected screening: %+v", got)
	}
}

func TestScheduleCreateAllowsSameDateDifferentTime(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.Create(ctx, screening("movie-1", "20151201", "18:00")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, screening("movie-1", "20151201", "21:00")); err != nil {
		t.Errorf("expected a second showing on the same date, got: %v", err)
	}

	err := repo.Create(ctx, screening("movie-1", "20151201", "18:00"))
	if !errors.Is(err, scheduleserrors.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for an exact duplicate, got %v", err)
	}
}

func TestScheduleDeleteRemovesAllShowingsForDate(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.Create(ctx, screening("movie-1", "20151201", "18:00")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, screening("movie-1", "20151201", "21:00")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, screening("movie-1", "20151202", "20:00")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, "movie-1", "20151201"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := repo.FindByMovieAndDate(ctx, "movie-1", "20151201")
	if !errors.Is(err, scheduleserrors.ErrNotFound) {
		t.Errorf("expected both showings for the date to be gone, got %v", err)
	}

	remaining, err := repo.FindByMovie(ctx, "movie-1")
	if err != nil {
		t.Fatalf("FindByMovie failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Date != "20151202" {
		t.Errorf("expected the other date to survive, got %+v", remaining)
	}
}

func TestScheduleDeleteUnknownDate(t *testing.T) {
	repo := newTestStore(t)

	err := repo.Delete(context.Background(), "movie-1", "20151201")
	if !errors.Is(err, scheduleserrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleFindByMovieUnknown(t *testing.T) {
	repo := newTestStore(t)

	_, err := repo.FindByMovie(context.Background(), "no-such-movie")
	if !errors.Is(err, scheduleserrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
