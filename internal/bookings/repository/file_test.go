package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	bookingserrors "cinebook/internal/bookings/errors"
	"cinebook/pkg/model"
)

func newTestStore(t *testing.T) (BookingRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.json")
	repo, err := NewFileBookingRepository(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return repo, path
}

func sampleAggregate(userID string) *model.BookingAggregate {
	return &model.BookingAggregate{
		UserID: userID,
		Dates: []model.DateEntry{
			{Date: "20151201", Movies: []string{"movie-1", "movie-2"}},
		},
	}
}

func TestFileStoreStartsEmpty(t *testing.T) {
	repo, _ := newTestStore(t)

	aggregates, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if aggregates == nil {
		t.Error("an empty store must answer an empty slice, not nil")
	}
	if len(aggregates) != 0 {
		t.Errorf("expected an empty store, got %d aggregates", len(aggregates))
	}

	_, err = repo.FindByUser(context.Background(), "nobody")
	if !errors.Is(err, bookingserrors.ErrAggregateNotFound) {
		t.Errorf("expected ErrAggregateNotFound, got %v", err)
	}
}

func TestFileStoreUpsertAndFind(t *testing.T) {
	repo, _ := newTestStore(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleAggregate("chris_rivers")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.FindByUser(ctx, "chris_rivers")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if got.UserID != "chris_rivers" || len(got.Dates) != 1 || len(got.Dates[0].Movies) != 2 {
		t.Errorf("unexpected aggregate: %+v", got)
	}
}

func TestFileStoreUpsertReplaces(t *testing.T) {
	repo, _ := newTestStore(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleAggregate("chris_rivers")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	replacement := &model.BookingAggregate{
		UserID: "chris_rivers",
		Dates:  []model.DateEntry{{Date: "20151202", Movies: []string{"movie-3"}}},
	}
	if err := repo.Upsert(ctx, replacement); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := repo.FindByUser(ctx, "chris_rivers")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if len(got.Dates) != 1 || got.Dates[0].Date != "20151202" {
		t.Errorf("expected the aggregate to be replaced wholesale, got %+v", got.Dates)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected a single aggregate after replace, got %d", len(all))
	}
}

func TestFileStoreDelete(t *testing.T) {
	repo, _ := newTestStore(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleAggregate("chris_rivers")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := repo.DeleteByUser(ctx, "chris_rivers"); err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}

	_, err := repo.FindByUser(ctx, "chris_rivers")
	if !errors.Is(err, bookingserrors.ErrAggregateNotFound) {
		t.Errorf("expected ErrAggregateNotFound after delete, got %v", err)
	}

	err = repo.DeleteByUser(ctx, "chris_rivers")
	if !errors.Is(err, bookingserrors.ErrAggregateNotFound) {
		t.Errorf("expected ErrAggregateNotFound on repeated delete, got %v", err)
	}
}

func TestFileStoreSurvivesReload(t *testing.T) {
	repo, path := newTestStore(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleAggregate("chris_rivers")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, sampleAggregate("dwight_schrute")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	reloaded, err := NewFileBookingRepository(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}

	all, err := reloaded.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both aggregates after reload, got %d", len(all))
	}

	got, err := reloaded.FindByUser(ctx, "dwight_schrute")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if len(got.Dates) != 1 || got.Dates[0].Movies[0] != "movie-1" {
		t.Errorf("unexpected aggregate after reload: %+v", got)
	}
}

func TestFileStoreReturnsCopies(t *testing.T) {
	repo, _ := newTestStore(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleAggregate("chris_rivers")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.FindByUser(ctx, "chris_rivers")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	got.Dates[0].Movies[0] = "tampered"

	again, err := repo.FindByUser(ctx, "chris_rivers")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if again.Dates[0].Movies[0] != "movie-1" {
		t.Errorf("mutating a returned aggregate leaked into the store: %+v", again)
	}
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	if _, err := NewFileBookingRepository(path); err == nil {
		t.Fatal("expected an error for a corrupt document")
	}
}
