package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	scheduleserrors "cinebook/internal/schedules/errors"
	"cinebook/pkg/config"
	"cinebook/pkg/model"
)

const CollectionName = "Schedule"

type ScheduleRepository interface {
	FindAll(ctx context.Context) ([]*model.Screening, error)
	FindByMovie(ctx context.Context, movieID string) ([]*model.Screening, error)
	FindByMovieAndDate(ctx context.Context, movieID, date string) (*model.Screening, error)
	Create(ctx context.Context, screening *model.Screening) error
	Delete(ctx context.Context, movieID, date string) error
}

type mongoScheduleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoScheduleRepository(cfg *config.Config) ScheduleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoScheduleRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoScheduleRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoScheduleRepository) FindAll(ctx context.Context) ([]*model.Screening, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "movieid", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find screenings: %w", err)
	}
	defer cursor.Close(ctx)

	var screenings []*model.Screening
	if err = cursor.All(ctx, &screenings); err != nil {
		return nil, fmt.Errorf("failed to decode screenings: %w", err)
	}
	if screenings == nil {
		screenings = []*model.Screening{}
	}

	return screenings, nil
}

func (r *mongoScheduleRepository) FindByMovie(ctx context.Context, movieID string) ([]*model.Screening, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"movieid": movieID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find screenings: %w", err)
	}
	defer cursor.Close(ctx)

	var screenings []*model.Screening
	if err = cursor.All(ctx, &screenings); err != nil {
		return nil, fmt.Errorf("failed to decode screenings: %w", err)
	}
	if len(screenings) == 0 {
		return nil, scheduleserrors.ErrNotFound
	}

	return screenings, nil
}

func (r *mongoScheduleRepository) FindByMovieAndDate(ctx context.Context, movieID, date string) (*model.Screening, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var screening model.Screening
	err := r.collection.FindOne(ctx, bson.M{"movieid": movieID, "date": date}).Decode(&screening)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, scheduleserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find screening: %w", err)
	}

	return &screening, nil
}

func (r *mongoScheduleRepository) Create(ctx context.Context, screening *model.Screening) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"movieid": screening.MovieID,
		"date":    screening.Date,
		"time":    screening.Time,
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check existing screenings: %w", err)
	}
	if count > 0 {
		return scheduleserrors.ErrAlreadyExists
	}

	if _, err := r.collection.InsertOne(ctx, screening); err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}

	return nil
}

func (r *mongoScheduleRepository) Delete(ctx context.Context, movieID, date string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"movieid": movieID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to delete screening: %w", err)
	}
	if result.DeletedCount == 0 {
		return scheduleserrors.ErrNotFound
	}

	return nil
}
