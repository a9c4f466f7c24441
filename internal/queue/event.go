// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingEvent is published whenever a booking is created, moved or
// cancelled. It carries the recipient address and enough day context
// for the notification consumer to render a message without querying
// the primary database. Kind is one of booking.confirmed,
// booking.updated or booking.cancelled.
type BookingEvent struct {
	Kind         string `json:"kind"`
	Recipient    string `json:"recipient"`
	UserName     string `json:"user_name"`
	BookingID    string `json:"booking_id"`
	FestivalName string `json:"festival_name"`
	DayDate      string `json:"day_date"`
	Theme        string `json:"theme"`
	Menu         string `json:"menu"`
	EmittedAt    string `json:"emitted_at"`
}
