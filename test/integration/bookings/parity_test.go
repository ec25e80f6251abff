package integrationtests

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "cinebook/internal/bookings/errors"
	"cinebook/internal/bookings/repository"
	"cinebook/pkg/client"
	"cinebook/pkg/config"
	"cinebook/pkg/logger"
	"cinebook/pkg/model"
)

// Runs only when TEST_MONGO_URI points at a reachable MongoDB. Replays the
// same operation sequence against the file and mongo backends and requires
// byte-identical JSON answers at every step.
func TestBackendParity(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping mongo: %v", err)
	}
	t.Cleanup(func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	})

	dbName := "cinebook_parity_" + uuid.NewString()[:8]
	t.Cleanup(func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		_ = mongoClient.Database(dbName).Drop(dropCtx)
	})

	cfg := &config.Config{
		MongoDatabaseName: dbName,
		ReadTimeout:       config.DefaultReadTimeout,
		WriteTimeout:      config.DefaultWriteTimeout,
		Log:               logger.New(logger.Config{Level: logger.ERROR, Service: "parity-tests"}),
		Client:            client.NewClient(),
	}
	cfg.Client.Mongo = mongoClient

	fileRepo, err := repository.NewFileBookingRepository(filepath.Join(t.TempDir(), "bookings.json"))
	if err != nil {
		t.Fatalf("failed to open file store: %v", err)
	}
	mongoRepo := repository.NewMongoBookingRepository(cfg)

	backends := map[string]repository.BookingRepository{
		"file":  fileRepo,
		"mongo": mongoRepo,
	}

	aggregateA := &model.BookingAggregate{
		UserID: "chris_rivers",
		Dates: []model.DateEntry{
			{Date: "20151201", Movies: []string{"movie-1", "movie-2"}},
		},
	}
	aggregateB := &model.BookingAggregate{
		UserID: "dwight_schrute",
		Dates: []model.DateEntry{
			{Date: "20151202", Movies: []string{"movie-3"}},
		},
	}
	replacement := &model.BookingAggregate{
		UserID: "chris_rivers",
		Dates: []model.DateEntry{
			{Date: "20151203", Movies: []string{"movie-4"}},
		},
	}

	// Empty store.
	compareFindAll(t, backends, "empty store")
	compareAbsence(t, backends, "chris_rivers", "empty store lookup")

	// Two aggregates in.
	for name, repo := range backends {
		if err := repo.Upsert(ctx, aggregateA); err != nil {
			t.Fatalf("%s: Upsert failed: %v", name, err)
		}
		if err := repo.Upsert(ctx, aggregateB); err != nil {
			t.Fatalf("%s: Upsert failed: %v", name, err)
		}
	}
	compareFindAll(t, backends, "after inserts")
	compareFindByUser(t, backends, "chris_rivers", "after inserts")

	// Replace one wholesale.
	for name, repo := range backends {
		if err := repo.Upsert(ctx, replacement); err != nil {
			t.Fatalf("%s: replace Upsert failed: %v", name, err)
		}
	}
	compareFindByUser(t, backends, "chris_rivers", "after replace")
	compareFindAll(t, backends, "after replace")

	// Delete one; repeated delete must answer absence on both.
	for name, repo := range backends {
		if err := repo.DeleteByUser(ctx, "dwight_schrute"); err != nil {
			t.Fatalf("%s: DeleteByUser failed: %v", name, err)
		}
		err := repo.DeleteByUser(ctx, "dwight_schrute")
		if !errors.Is(err, bookingserrors.ErrAggregateNotFound) {
			t.Fatalf("%s: expected ErrAggregateNotFound on repeated delete, got %v", name, err)
		}
	}
	compareAbsence(t, backends, "dwight_schrute", "after delete")
	compareFindAll(t, backends, "after delete")
}

func compareFindAll(t *testing.T, backends map[string]repository.BookingRepository, step string) {
	t.Helper()
	answers := make(map[string][]byte)
	for name, repo := range backends {
		aggregates, err := repo.FindAll(context.Background())
		if err != nil {
			t.Fatalf("%s: FindAll failed at %s: %v", name, step, err)
		}
		data, err := json.Marshal(aggregates)
		if err != nil {
			t.Fatalf("%s: marshal failed at %s: %v", name, step, err)
		}
		answers[name] = data
	}
	if string(answers["file"]) != string(answers["mongo"]) {
		t.Errorf("FindAll diverged at %s:\n  file:  %s\n  mongo: %s",
			step, answers["file"], answers["mongo"])
	}
}

func compareFindByUser(t *testing.T, backends map[string]repository.BookingRepository, userID, step string) {
	t.Helper()
	answers := make(map[string][]byte)
	for name, repo := range backends {
		aggregate, err := repo.FindByUser(context.Background(), userID)
		if err != nil {
			t.Fatalf("%s: FindByUser failed at %s: %v", name, step, err)
		}
		data, err := json.Marshal(aggregate)
		if err != nil {
			t.Fatalf("%s: marshal failed at %s: %v", name, step, err)
		}
		answers[name] = data
	}
	if string(answers["file"]) != string(answers["mongo"]) {
		t.Errorf("FindByUser(%s) diverged at %s:\n  file:  %s\n  mongo: %s",
			userID, step, answers["file"], answers["mongo"])
	}
}

func compareAbsence(t *testing.T, backends map[string]repository.BookingRepository, userID, step string) {
	t.Helper()
	for name, repo := range backends {
		_, err := repo.FindByUser(context.Background(), userID)
		if !errors.Is(err, bookingserrors.ErrAggregateNotFound) {
			t.Errorf("%s: expected ErrAggregateNotFound at %s, got %v", name, step, err)
		}
	}
}
