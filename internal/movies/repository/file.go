package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	movieserrors "cinebook/internal/movies/errors"
	"cinebook/pkg/model"
	"cinebook/pkg/storage"
)

type moviesDocument struct {
	Movies []*model.Movie `json:"movies"`
}

type fileMovieRepository struct {
	path string

	mu     sync.RWMutex
	movies []*model.Movie
}

func NewFileMovieRepository(path string) (MovieRepository, error) {
	var doc moviesDocument
	if err := storage.LoadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to load movies store: %w", err)
	}

	return &fileMovieRepository{
		path:   path,
		movies: doc.Movies,
	}, nil
}

func (r *fileMovieRepository) FindAll(_ context.Context) ([]*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Movie, len(r.movies))
	for i, m := range r.movies {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

func (r *fileMovieRepository) FindByID(_ context.Context, id string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		copied := *r.movies[i]
		return &copied, nil
	}
	return nil, movieserrors.ErrNotFound
}

func (r *fileMovieRepository) FindByTitle(_ context.Context, title string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if strings.EqualFold(m.Title, title) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, movieserrors.ErrNotFound
}

func (r *fileMovieRepository) Create(_ context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(movie.ID) >= 0 {
		return movieserrors.ErrAlreadyExists
	}

	copied := *movie
	r.movies = append(r.movies, &copied)
	return r.flush()
}

func (r *fileMovieRepository) UpdateRating(_ context.Context, id string, rating float64) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, movieserrors.ErrNotFound
	}

	r.movies[i].Rating = rating
	if err := r.flush(); err != nil {
		return nil, err
	}

	copied := *r.movies[i]
	return &copied, nil
}

func (r *fileMovieRepository) Delete(_ context.Context, id string) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, movieserrors.ErrNotFound
	}

	deleted := *r.movies[i]
	r.movies = append(r.movies[:i], r.movies[i+1:]...)
	if err := r.flush(); err != nil {
		return nil, err
	}

	return &deleted, nil
}

// indexOf must be called with the lock held.
func (r *fileMovieRepository) indexOf(id string) int {
	for i, m := range r.movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// flush must be called with the write lock held.
func (r *fileMovieRepository) flush() error {
	return storage.SaveJSON(r.path, moviesDocument{Movies: r.movies})
}
