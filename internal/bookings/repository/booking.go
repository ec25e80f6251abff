package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "cinebook/internal/bookings/errors"
	"cinebook/pkg/config"
	"cinebook/pkg/model"
)

const CollectionName = "Bookings"

// BookingRepository is the persistence adapter for booking aggregates.
// Both backends must behave identically for every operation: Upsert is a
// full replace of the aggregate keyed by user id, and absence is always
// reported as ErrAggregateNotFound.
type BookingRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.BookingAggregate, error)
	Upsert(ctx context.Context, aggregate *model.BookingAggregate) error
	DeleteByUser(ctx context.Context, userID string) error
	FindAll(ctx context.Context) ([]*model.BookingAggregate, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// NewMongoBookingRepository stores one document per aggregate, _id = userid.
// No multi-document transactions are used; per-user serialization is the
// service's job.
func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) (*model.BookingAggregate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var aggregate model.BookingAggregate
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&aggregate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrAggregateNotFound
		}
		return nil, fmt.Errorf("failed to find booking aggregate: %w", err)
	}

	return &aggregate, nil
}

func (r *mongoBookingRepository) Upsert(ctx context.Context, aggregate *model.BookingAggregate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": aggregate.UserID}, aggregate, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert booking aggregate: %w", err)
	}

	return nil
}

func (r *mongoBookingRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete booking aggregate: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingserrors.ErrAggregateNotFound
	}

	return nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.BookingAggregate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking aggregates: %w", err)
	}
	defer cursor.Close(ctx)

	var aggregates []*model.BookingAggregate
	if err = cursor.All(ctx, &aggregates); err != nil {
		return nil, fmt.Errorf("failed to decode booking aggregates: %w", err)
	}
	if aggregates == nil {
		// An empty store is an empty slice, never nil: the file backend
		// always answers non-nil and both must render the same JSON.
		aggregates = []*model.BookingAggregate{}
	}

	return aggregates, nil
}
