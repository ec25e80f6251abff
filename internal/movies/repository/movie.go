package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	movieserrors "cinebook/internal/movies/errors"
	"cinebook/pkg/config"
	"cinebook/pkg/model"
)

const CollectionName = "Movies"

type MovieRepository interface {
	FindAll(ctx context.Context) ([]*model.Movie, error)
	FindByID(ctx context.Context, id string) (*model.Movie, error)
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)
	Create(ctx context.Context, movie *model.Movie) error
	UpdateRating(ctx context.Context, id string, rating float64) (*model.Movie, error)
	Delete(ctx context.Context, id string) (*model.Movie, error)
}

type mongoMovieRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoMovieRepository(cfg *config.Config) MovieRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMovieRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoMovieRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoMovieRepository) FindAll(ctx context.Context) ([]*model.Movie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer cursor.Close(ctx)

	var movies []*model.Movie
	if err = cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}
	if movies == nil {
		movies = []*model.Movie{}
	}

	return movies, nil
}

func (r *mongoMovieRepository) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var movie model.Movie
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, movieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *mongoMovieRepository) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Case-insensitive exact match on the full title.
	filter := bson.M{"title": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(title) + "$",
		Options: "i",
	}}

	var movie model.Movie
	err := r.collection.FindOne(ctx, filter).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, movieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movie by title: %w", err)
	}

	return &movie, nil
}

func (r *mongoMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, movie)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return movieserrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *mongoMovieRepository) UpdateRating(ctx context.Context, id string, rating float64) (*model.Movie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"rating": rating}}

	var movie model.Movie
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, movieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update movie rating: %w", err)
	}

	return &movie, nil
}

func (r *mongoMovieRepository) Delete(ctx context.Context, id string) (*model.Movie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	var movie model.Movie
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, movieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete movie: %w", err)
	}

	return &movie, nil
}
