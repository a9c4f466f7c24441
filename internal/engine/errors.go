// Package engine implements the booking rules of the festival: one
// active booking per user across all days, and a per-day capacity
// ceiling. All mutating operations run inside a store transaction so
// the existence check, the capacity check and the write commit or
// fail as a unit.
package engine

import "errors"

// Sentinel errors returned by engine operations. Handlers translate
// these into HTTP status codes; everything else is treated as a
// storage failure and surfaced as 500.
var (
	// ErrFestivalNotFound is returned when no festival record exists.
	ErrFestivalNotFound = errors.New("festival not found")

	// ErrDayNotFound is returned when the referenced day does not exist.
	ErrDayNotFound = errors.New("day not found")

	// ErrUserNotFound is returned when the referenced user does not
	// exist, e.g. an admin booking for an unknown email address.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookingNotFound is returned when the caller has no active
	// booking to read, move or cancel. Cancelling twice yields this on
	// the second call, never a silent success.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyBooked is returned when the user already holds an
	// active booking. One ticket per user, festival-wide.
	ErrAlreadyBooked = errors.New("user already has a booking")

	// ErrDayFull is returned when the target day has no free slots
	// left at the time of the admission check.
	ErrDayFull = errors.New("day is fully booked")

	// ErrDayHasBookings is returned when a day with active bookings
	// is about to be deleted.
	ErrDayHasBookings = errors.New("day still has bookings")
)
