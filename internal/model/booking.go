package model

import "time"

// BookingStatusConfirmed is the only status a stored booking can
// carry: cancellation removes the row outright, so there is no
// persisted "cancelled" state. The column exists for parity with the
// wire format and to leave room for soft-cancel later.
const BookingStatusConfirmed = "confirmed"

// Booking records a user's reservation for a single festival day.
// Each user holds at most one booking at a time (enforced by a UNIQUE
// index on UserID) and each day accepts at most Capacity bookings.
// Moving to another day mutates DayID in place; the identity and
// BookingDate survive the move.
//
// Fields:
//  ID          – primary key identifier (UUID).
//  UserID      – owning user; unique among live bookings.
//  DayID       – booked day.
//  FestivalID  – festival the day belongs to.
//  BookingDate – when the booking was first made.
//  Status      – always "confirmed" while the row exists.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – timestamp of last modification (e.g. a move).
type Booking struct {
	ID          string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	DayID       string    `json:"day_id"`
	FestivalID  string    `json:"festival_id"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
