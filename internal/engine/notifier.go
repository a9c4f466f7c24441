package engine

import (
	"context"
	"time"
)

// Notification kinds emitted by the engine.
const (
	NotifyConfirmed = "booking.confirmed"
	NotifyUpdated   = "booking.updated"
	NotifyCancelled = "booking.cancelled"
)

// Notification carries everything a delivery channel needs to tell a
// user about a change to their booking. The engine emits it after the
// mutation has committed; the booking row is the durable fact and a
// failed notification never rolls it back.
type Notification struct {
	Kind         string
	Recipient    string
	UserName     string
	BookingID    string
	FestivalName string
	DayDate      time.Time
	Theme        string
	Menu         string
}

// Notifier delivers notifications best-effort. Implementations must
// not block the booking path; the engine invokes Notify from a
// separate goroutine and only logs failures.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
