package engine

import (
	"context"
	"time"

	"github.com/iliyamo/festival-booking/internal/model"
)

// Store is the persistence contract the engine runs against. The
// MySQL implementation lives in internal/repository; tests use an
// in-memory fake.
//
// WithTx runs fn inside a transaction; every other method joins the
// transaction carried in ctx when one is present. GetDayForUpdate
// must lock the day row for the remainder of the transaction so that
// concurrent capacity checks against the same day serialize. Lookup
// methods return the package sentinels (ErrDayNotFound and friends)
// when no record matches; InsertBooking returns ErrAlreadyBooked when
// the per-user uniqueness constraint rejects the row, and
// UpdateBookingDay returns ErrBookingNotFound when the booking was
// deleted out from under the caller.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetFestival(ctx context.Context, festivalID string) (*model.Festival, error)
	GetDay(ctx context.Context, dayID string) (*model.Day, error)
	GetDayForUpdate(ctx context.Context, dayID string) (*model.Day, error)
	DeleteDay(ctx context.Context, dayID string) error

	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// FindBookingByUser returns (nil, nil) when the user holds no booking.
	FindBookingByUser(ctx context.Context, userID string) (*model.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*model.Booking, error)
	CountBookingsForDay(ctx context.Context, dayID string) (int, error)
	CountBookingsForDayExcluding(ctx context.Context, dayID, userID string) (int, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	UpdateBookingDay(ctx context.Context, bookingID, dayID, festivalID string, at time.Time) error
	DeleteBooking(ctx context.Context, bookingID string) error
}
