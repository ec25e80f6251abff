package errors

import "errors"

// ErrAggregateNotFound means the user has no booking aggregate at all.
var ErrAggregateNotFound = errors.New("no bookings found for user")
