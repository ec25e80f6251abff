package model

// BookingAggregate holds every booking of a single user, grouped by date.
// Invariants, maintained by the bookings service: Dates never contains an
// entry with an empty Movies set, and an aggregate whose Dates is empty is
// deleted from storage rather than persisted.
type BookingAggregate struct {
	UserID string      `json:"userid" bson:"_id"`
	Dates  []DateEntry `json:"dates" bson:"dates"`
}

// DateEntry is the set of movie ids booked for one date. Movies keeps
// insertion order for iteration but order carries no meaning.
type DateEntry struct {
	Date   string   `json:"date" bson:"date"`
	Movies []string `json:"movies" bson:"movies"`
}

// BookingRequest is the body of POST /bookings. All identifiers are opaque;
// date is compared for equality only.
type BookingRequest struct {
	UserID  string `json:"userid" validate:"required"`
	MovieID string `json:"movieid" validate:"required"`
	Date    string `json:"date" validate:"required"`
}

// DetailedBookings is a user's aggregate enriched with movie and screening
// documents fetched from the collaborator services.
type DetailedBookings struct {
	UserID   string         `json:"userid"`
	Bookings []DetailedDate `json:"bookings"`
}

type DetailedDate struct {
	Date   string          `json:"date"`
	Movies []DetailedMovie `json:"movies"`
}

type DetailedMovie struct {
	Movie    *Movie     `json:"movie"`
	Schedule *Screening `json:"schedule"`
}

// Clone returns a deep copy, so callers can mutate a working copy without
// exposing partial state to concurrent readers of the original.
func (a *BookingAggregate) Clone() *BookingAggregate {
	out := &BookingAggregate{
		UserID: a.UserID,
		Dates:  make([]DateEntry, len(a.Dates)),
	}
	for i, d := range a.Dates {
		out.Dates[i] = DateEntry{
			Date:   d.Date,
			Movies: append([]string(nil), d.Movies...),
		}
	}
	return out
}
