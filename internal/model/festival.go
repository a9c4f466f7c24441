package model

import "time"

// Festival is the singleton record describing the event as a whole.
// It is created once at provisioning time and edited through the
// admin surface. Days reference it via FestivalID.
//
// Fields:
//  ID             – primary key identifier (UUID).
//  Name           – display name of the festival.
//  StartDate      – first calendar day of the festival.
//  EndDate        – last calendar day of the festival.
//  Location       – street address shown to attendees.
//  PriceCents     – ticket price in cents, uniform across days.
//  CapacityPerDay – default capacity applied to newly created days.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – timestamp of last update.
type Festival struct {
	ID             string    `json:"festival_id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Location       string    `json:"location"`
	PriceCents     uint32    `json:"price_cents"`
	CapacityPerDay int       `json:"capacity_per_day"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
