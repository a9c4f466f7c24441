package model

import "time"

// Day is one bookable day of the festival. Capacity is stored per day
// so an administrator can open or close individual days without
// touching the festival default; the booking engine always reads the
// ceiling from this record, never from a constant.
//
// Fields:
//  ID         – primary key identifier (UUID).
//  FestivalID – owning festival.
//  Date       – calendar date of the day.
//  Theme      – headline theme shown in listings.
//  Menu       – free-form menu text.
//  Capacity   – maximum number of confirmed bookings (>= 0).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – timestamp of last update.
type Day struct {
	ID         string    `json:"day_id"`
	FestivalID string    `json:"festival_id"`
	Date       time.Time `json:"date"`
	Theme      string    `json:"theme"`
	Menu       string    `json:"menu"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
