package engine

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/festival-booking/internal/model"
)

// Engine decides whether a requested booking mutation is legal and
// applies it atomically. It holds no mutable state of its own: all
// cross-request coordination happens through the store's transaction
// and row-locking primitives.
type Engine struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// New constructs an Engine. notifier may be nil, in which case no
// notifications are emitted (useful in tests and one-off tooling).
func New(store Store, notifier Notifier) *Engine {
	if store == nil {
		panic("nil store passed to engine.New")
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create books the given day for the user. It fails with
// ErrAlreadyBooked when the user holds any active booking,
// ErrDayFull when the day is at capacity, and ErrDayNotFound /
// ErrUserNotFound for dangling references. The day row is locked
// before the occupancy count so two concurrent creates for the last
// slot cannot both pass the check.
func (e *Engine) Create(ctx context.Context, userID, dayID string) (*model.Booking, error) {
	var booking *model.Booking
	var day *model.Day
	var user *model.User

	err := e.store.WithTx(ctx, func(ctx context.Context) error {
		u, err := e.store.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		b, d, err := e.createLocked(ctx, u, dayID)
		if err != nil {
			return err
		}
		booking, day, user = b, d, u
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifyAsync(NotifyConfirmed, user, day, booking)
	return booking, nil
}

// CreateForUser is the administrative variant of Create: the target
// user is looked up by email instead of taken from the caller's
// identity. The one-booking-per-user and capacity invariants apply
// unchanged; only the acting principal differs.
func (e *Engine) CreateForUser(ctx context.Context, email, dayID string) (*model.Booking, error) {
	var booking *model.Booking
	var day *model.Day
	var user *model.User

	err := e.store.WithTx(ctx, func(ctx context.Context) error {
		u, err := e.store.GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		b, d, err := e.createLocked(ctx, u, dayID)
		if err != nil {
			return err
		}
		booking, day, user = b, d, u
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifyAsync(NotifyConfirmed, user, day, booking)
	return booking, nil
}

// createLocked performs the shared check-and-insert sequence. It must
// run inside a transaction opened by the caller.
func (e *Engine) createLocked(ctx context.Context, user *model.User, dayID string) (*model.Booking, *model.Day, error) {
	day, err := e.store.GetDayForUpdate(ctx, dayID)
	if err != nil {
		return nil, nil, err
	}
	existing, err := e.store.FindBookingByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrAlreadyBooked
	}
	occupied, err := e.store.CountBookingsForDay(ctx, dayID)
	if err != nil {
		return nil, nil, err
	}
	if occupied >= day.Capacity {
		return nil, nil, ErrDayFull
	}
	now := e.now()
	booking := &model.Booking{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		DayID:       day.ID,
		FestivalID:  day.FestivalID,
		BookingDate: now,
		Status:      model.BookingStatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// The UNIQUE index on user_id backstops the existence check above
	// against a racing insert that the day lock does not cover (two
	// creates for the same user on different days).
	if err := e.store.InsertBooking(ctx, booking); err != nil {
		return nil, nil, err
	}
	return booking, day, nil
}

// Move rebooks the user's existing booking onto newDayID. The user's
// own slot is excluded from the destination occupancy count, so a
// no-op move within a full day succeeds. Identity and BookingDate of
// the booking are preserved.
func (e *Engine) Move(ctx context.Context, userID, newDayID string) (*model.Booking, error) {
	var booking *model.Booking
	var day *model.Day
	var user *model.User

	err := e.store.WithTx(ctx, func(ctx context.Context) error {
		u, err := e.store.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		existing, err := e.store.FindBookingByUser(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrBookingNotFound
		}
		d, err := e.store.GetDayForUpdate(ctx, newDayID)
		if err != nil {
			return err
		}
		occupied, err := e.store.CountBookingsForDayExcluding(ctx, newDayID, userID)
		if err != nil {
			return err
		}
		if occupied >= d.Capacity {
			return ErrDayFull
		}
		now := e.now()
		if err := e.store.UpdateBookingDay(ctx, existing.ID, d.ID, d.FestivalID, now); err != nil {
			return err
		}
		moved := *existing
		moved.DayID = d.ID
		moved.FestivalID = d.FestivalID
		moved.UpdatedAt = now
		booking, day, user = &moved, d, u
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifyAsync(NotifyUpdated, user, day, booking)
	return booking, nil
}

// Cancel removes the user's booking outright, freeing the slot
// immediately. Cancelling when no booking exists returns
// ErrBookingNotFound.
func (e *Engine) Cancel(ctx context.Context, userID string) error {
	var booking *model.Booking
	var day *model.Day
	var user *model.User

	err := e.store.WithTx(ctx, func(ctx context.Context) error {
		u, err := e.store.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		existing, err := e.store.FindBookingByUser(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrBookingNotFound
		}
		d, err := e.store.GetDay(ctx, existing.DayID)
		if err != nil {
			return err
		}
		if err := e.store.DeleteBooking(ctx, existing.ID); err != nil {
			return err
		}
		booking, day, user = existing, d, u
		return nil
	})
	if err != nil {
		return err
	}
	e.notifyAsync(NotifyCancelled, user, day, booking)
	return nil
}

// CancelByID removes a booking by its identifier regardless of owner.
// Used by the admin surface.
func (e *Engine) CancelByID(ctx context.Context, bookingID string) error {
	var booking *model.Booking
	var day *model.Day
	var user *model.User

	err := e.store.WithTx(ctx, func(ctx context.Context) error {
		existing, err := e.store.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		u, err := e.store.GetUser(ctx, existing.UserID)
		if err != nil {
			return err
		}
		d, err := e.store.GetDay(ctx, existing.DayID)
		if err != nil {
			return err
		}
		if err := e.store.DeleteBooking(ctx, existing.ID); err != nil {
			return err
		}
		booking, day, user = existing, d, u
		return nil
	})
	if err != nil {
		return err
	}
	e.notifyAsync(NotifyCancelled, user, day, booking)
	return nil
}

// DeleteDay removes a day from the catalog. It refuses with
// ErrDayHasBookings while any booking still references the day; the
// day row is locked first so a concurrent Create cannot slip a
// booking in between the count and the delete.
func (e *Engine) DeleteDay(ctx context.Context, dayID string) error {
	return e.store.WithTx(ctx, func(ctx context.Context) error {
		if _, err := e.store.GetDayForUpdate(ctx, dayID); err != nil {
			return err
		}
		occupied, err := e.store.CountBookingsForDay(ctx, dayID)
		if err != nil {
			return err
		}
		if occupied > 0 {
			return ErrDayHasBookings
		}
		return e.store.DeleteDay(ctx, dayID)
	})
}

// notifyAsync emits a booking notification without blocking the
// request. Users who opted out of email generate no event. The
// background context is deliberate: the request context is often
// cancelled right after the response is written.
func (e *Engine) notifyAsync(kind string, user *model.User, day *model.Day, booking *model.Booking) {
	if e.notifier == nil || user == nil || !user.EmailOptIn {
		return
	}
	festivalName := ""
	if f, err := e.store.GetFestival(context.Background(), day.FestivalID); err == nil {
		festivalName = f.Name
	}
	n := Notification{
		Kind:         kind,
		Recipient:    user.Email,
		UserName:     user.Name,
		BookingID:    booking.ID,
		FestivalName: festivalName,
		DayDate:      day.Date,
		Theme:        day.Theme,
		Menu:         day.Menu,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.notifier.Notify(ctx, n); err != nil {
			log.Printf("engine: %s notification for %s failed: %v", kind, n.Recipient, err)
		}
	}()
}
