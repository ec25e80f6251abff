package service

import (
	"context"
	"errors"
	"sync"

	bookingserrors "cinebook/internal/bookings/errors"
	"cinebook/internal/bookings/repository"
	"cinebook/internal/bookings/validator"
	"cinebook/pkg/config"
	apperrors "cinebook/pkg/errors"
	"cinebook/pkg/events"
	"cinebook/pkg/model"
)

// MovieFinder answers found or absent only; collaborator failures are folded
// into absence by the client layer and never surface here as errors.
type MovieFinder interface {
	FindMovie(ctx context.Context, movieID string) (*model.Movie, bool)
}

type ScreeningFinder interface {
	FindScreening(ctx context.Context, movieID, date string) (*model.Screening, bool)
}

type UserFinder interface {
	FindUser(ctx context.Context, userID string) (*model.User, bool)
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) error
	GetByUser(ctx context.Context, userID string) (*model.BookingAggregate, error)
	GetDetailedByUser(ctx context.Context, userID string) (*model.DetailedBookings, error)
	DeleteBooking(ctx context.Context, userID, movieID, date string) error
	DeleteAllByUser(ctx context.Context, userID string) error
	ListAll(ctx context.Context, requestingUserID string) ([]*model.BookingAggregate, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	movies     MovieFinder
	screenings ScreeningFinder
	users      UserFinder
	validator  *validator.BookingValidator
	publisher  *events.Publisher
	cfg        *config.Config

	locks *userLocks

	// Admin determinations are cached for the process lifetime and never
	// invalidated; a role change requires a restart to be observed.
	roleMu    sync.RWMutex
	roleCache map[string]bool
}

func NewBookingService(
	repo repository.BookingRepository,
	movies MovieFinder,
	screenings ScreeningFinder,
	users UserFinder,
	bookingValidator *validator.BookingValidator,
	publisher *events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		movies:     movies,
		screenings: screenings,
		users:      users,
		validator:  bookingValidator,
		publisher:  publisher,
		cfg:        cfg,
		locks:      newUserLocks(),
		roleCache:  make(map[string]bool),
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) error {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return apperrors.Validation("userid, movieid and date are required", map[string]any{"error": err.Error()})
	}

	if _, found := s.movies.FindMovie(ctx, req.MovieID); !found {
		return apperrors.NotFoundWithID("Movie", req.MovieID)
	}
	if _, found := s.screenings.FindScreening(ctx, req.MovieID, req.Date); !found {
		return apperrors.NotFound("Screening for this movie and date")
	}

	release := s.locks.acquire(req.UserID)
	defer release()

	aggregate, err := s.repo.FindByUser(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, bookingserrors.ErrAggregateNotFound) {
			return apperrors.Internal("Failed to load bookings", err)
		}
		aggregate = &model.BookingAggregate{UserID: req.UserID}
	}

	entry := findDate(aggregate, req.Date)
	if entry == nil {
		aggregate.Dates = append(aggregate.Dates, model.DateEntry{Date: req.Date})
		entry = &aggregate.Dates[len(aggregate.Dates)-1]
	}

	for _, id := range entry.Movies {
		if id == req.MovieID {
			return apperrors.Conflict("Movie already booked for this date")
		}
	}
	entry.Movies = append(entry.Movies, req.MovieID)

	if err := s.repo.Upsert(ctx, aggregate); err != nil {
		s.cfg.Log.Error("Failed to persist booking", "userid", req.UserID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publisher.Publish(ctx, events.TypeBookingCreated, events.BookingEvent{
		UserID:  req.UserID,
		MovieID: req.MovieID,
		Date:    req.Date,
	})

	s.cfg.Log.Info("Booking created successfully",
		"userid", req.UserID,
		"movieid", req.MovieID,
		"date", req.Date,
	)
	return nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string) (*model.BookingAggregate, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("userid cannot be empty")
	}

	aggregate, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrAggregateNotFound) {
			return nil, apperrors.NotFound("Bookings for this user")
		}
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	return aggregate, nil
}

func (s *bookingService) GetDetailedByUser(ctx context.Context, userID string) (*model.DetailedBookings, error) {
	aggregate, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	detailed := &model.DetailedBookings{
		UserID:   userID,
		Bookings: []model.DetailedDate{},
	}

	// Best effort: a pair is included only when both collaborators answer.
	// Partial failures drop the pair silently; dates left empty are omitted.
	for _, entry := range aggregate.Dates {
		date := model.DetailedDate{Date: entry.Date}
		for _, movieID := range entry.Movies {
			movie, foundMovie := s.movies.FindMovie(ctx, movieID)
			screening, foundScreening := s.screenings.FindScreening(ctx, movieID, entry.Date)
			if foundMovie && foundScreening {
				date.Movies = append(date.Movies, model.DetailedMovie{
					Movie:    movie,
					Schedule: screening,
				})
			}
		}
		if len(date.Movies) > 0 {
			detailed.Bookings = append(detailed.Bookings, date)
		}
	}

	return detailed, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, userID, movieID, date string) error {
	release := s.locks.acquire(userID)
	defer release()

	aggregate, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrAggregateNotFound) {
			// Deliberately the same answer whether the user never booked or
			// this movie/date was never booked.
			return apperrors.NotFound("Booking")
		}
		return apperrors.Internal("Failed to load bookings", err)
	}

	if !removeBooking(aggregate, movieID, date) {
		return apperrors.NotFound("Booking")
	}

	if len(aggregate.Dates) == 0 {
		err = s.repo.DeleteByUser(ctx, userID)
	} else {
		err = s.repo.Upsert(ctx, aggregate)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to persist booking removal", "userid", userID, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.publisher.Publish(ctx, events.TypeBookingCancelled, events.BookingEvent{
		UserID:  userID,
		MovieID: movieID,
		Date:    date,
	})

	s.cfg.Log.Info("Booking deleted successfully",
		"userid", userID,
		"movieid", movieID,
		"date", date,
	)
	return nil
}

func (s *bookingService) DeleteAllByUser(ctx context.Context, userID string) error {
	release := s.locks.acquire(userID)
	defer release()

	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		if errors.Is(err, bookingserrors.ErrAggregateNotFound) {
			return apperrors.NotFound("Bookings for this user")
		}
		return apperrors.Internal("Failed to delete bookings", err)
	}

	s.publisher.Publish(ctx, events.TypeBookingsPurged, events.BookingEvent{UserID: userID})

	s.cfg.Log.Info("All bookings deleted for user", "userid", userID)
	return nil
}

func (s *bookingService) ListAll(ctx context.Context, requestingUserID string) ([]*model.BookingAggregate, error) {
	if requestingUserID == "" {
		return nil, apperrors.InvalidInput("userid query parameter is required")
	}

	if !s.isAdmin(ctx, requestingUserID) {
		s.cfg.Log.Warn("Non-admin attempted to list all bookings", "userid", requestingUserID)
		return nil, apperrors.Forbidden("Admin role required")
	}

	aggregates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list bookings", err)
	}

	return aggregates, nil
}

// isAdmin consults the role cache first; only a miss triggers a lookup. An
// absent user resolves to false and is cached like any other answer.
func (s *bookingService) isAdmin(ctx context.Context, userID string) bool {
	s.roleMu.RLock()
	admin, cached := s.roleCache[userID]
	s.roleMu.RUnlock()
	if cached {
		return admin
	}

	admin = false
	if user, found := s.users.FindUser(ctx, userID); found {
		admin = user.IsAdmin()
	}

	s.roleMu.Lock()
	s.roleCache[userID] = admin
	s.roleMu.Unlock()

	return admin
}

// --- Aggregate helpers ---

func findDate(aggregate *model.BookingAggregate, date string) *model.DateEntry {
	for i := range aggregate.Dates {
		if aggregate.Dates[i].Date == date {
			return &aggregate.Dates[i]
		}
	}
	return nil
}

// removeBooking drops the movie from the matching date entry and cascades:
// an emptied date entry is removed from the aggregate. Reports whether the
// booking existed.
func removeBooking(aggregate *model.BookingAggregate, movieID, date string) bool {
	for i := range aggregate.Dates {
		entry := &aggregate.Dates[i]
		if entry.Date != date {
			continue
		}
		for j, id := range entry.Movies {
			if id != movieID {
				continue
			}
			entry.Movies = append(entry.Movies[:j], entry.Movies[j+1:]...)
			if len(entry.Movies) == 0 {
				aggregate.Dates = append(aggregate.Dates[:i], aggregate.Dates[i+1:]...)
			}
			return true
		}
	}
	return false
}
