package repository

import (
	"context"
	"fmt"
	"sync"

	bookingserrors "cinebook/internal/bookings/errors"
	"cinebook/pkg/model"
	"cinebook/pkg/storage"
)

// bookingsDocument is the persisted layout in file mode: one JSON document
// holding every aggregate, rewritten wholesale per mutation.
type bookingsDocument struct {
	Bookings []*model.BookingAggregate `json:"bookings"`
}

type fileBookingRepository struct {
	path string

	// One mutex for the whole store: the file is rewritten in full on every
	// mutation, so writers must be serialized globally, not per user.
	mu         sync.RWMutex
	aggregates []*model.BookingAggregate
}

// NewFileBookingRepository materializes the document in memory at startup
// and keeps the file in sync on every mutating call.
func NewFileBookingRepository(path string) (BookingRepository, error) {
	var doc bookingsDocument
	if err := storage.LoadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to load bookings store: %w", err)
	}

	return &fileBookingRepository{
		path:       path,
		aggregates: doc.Bookings,
	}, nil
}

func (r *fileBookingRepository) FindByUser(_ context.Context, userID string) (*model.BookingAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(userID); i >= 0 {
		return r.aggregates[i].Clone(), nil
	}
	return nil, bookingserrors.ErrAggregateNotFound
}

func (r *fileBookingRepository) Upsert(_ context.Context, aggregate *model.BookingAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := aggregate.Clone()
	if i := r.indexOf(aggregate.UserID); i >= 0 {
		r.aggregates[i] = stored
	} else {
		r.aggregates = append(r.aggregates, stored)
	}

	return r.flush()
}

func (r *fileBookingRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID)
	if i < 0 {
		return bookingserrors.ErrAggregateNotFound
	}

	r.aggregates = append(r.aggregates[:i], r.aggregates[i+1:]...)
	return r.flush()
}

func (r *fileBookingRepository) FindAll(_ context.Context) ([]*model.BookingAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.BookingAggregate, len(r.aggregates))
	for i, a := range r.aggregates {
		out[i] = a.Clone()
	}
	return out, nil
}

// indexOf must be called with the lock held.
func (r *fileBookingRepository) indexOf(userID string) int {
	for i, a := range r.aggregates {
		if a.UserID == userID {
			return i
		}
	}
	return -1
}

// flush must be called with the write lock held. The call blocks until the
// rewrite completes; a failure is surfaced to the request as-is.
func (r *fileBookingRepository) flush() error {
	return storage.SaveJSON(r.path, bookingsDocument{Bookings: r.aggregates})
}
