package events

import "time"

// Booking lifecycle event types emitted on the booking events topic.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingsPurged   = "bookings.purged"
)

// Header keys shared with downstream consumers.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// BookingEvent is the payload for every booking lifecycle event. MovieID and
// Date are empty for bookings.purged, which covers the whole aggregate.
type BookingEvent struct {
	UserID     string    `json:"userid"`
	MovieID    string    `json:"movieid,omitempty"`
	Date       string    `json:"date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
