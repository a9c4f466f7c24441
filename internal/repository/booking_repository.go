package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

const bookingColumns = `id, user_id, day_id, festival_id, booking_date, status, created_at, updated_at`

func scanBooking(row *sql.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.DayID, &b.FestivalID, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindBookingByUser returns the user's active booking, or (nil, nil)
// when the user holds none. A user can hold at most one row here; the
// UNIQUE index on user_id guarantees it.
func (s *Store) FindBookingByUser(ctx context.Context, userID string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ?`
	b, err := scanBooking(s.conn(ctx).QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// GetBooking returns a booking by identifier.
func (s *Store) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(s.conn(ctx).QueryRowContext(ctx, q, bookingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrBookingNotFound
	}
	return b, err
}

// CountBookingsForDay returns the current occupancy of a day.
func (s *Store) CountBookingsForDay(ctx context.Context, dayID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE day_id = ?`
	var n int
	err := s.conn(ctx).QueryRowContext(ctx, q, dayID).Scan(&n)
	return n, err
}

// CountBookingsForDayExcluding returns the occupancy of a day with
// one user's own booking left out of the count. Used by move
// operations so a user is not blocked by the slot they are vacating.
func (s *Store) CountBookingsForDayExcluding(ctx context.Context, dayID, userID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE day_id = ? AND user_id <> ?`
	var n int
	err := s.conn(ctx).QueryRowContext(ctx, q, dayID, userID).Scan(&n)
	return n, err
}

// InsertBooking inserts a new booking row. A duplicate-key rejection
// on the user_id UNIQUE index is mapped to engine.ErrAlreadyBooked so
// racing creates for the same user resolve to exactly one winner.
func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (id, user_id, day_id, festival_id, booking_date, status, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.conn(ctx).ExecContext(ctx, q,
		b.ID, b.UserID, b.DayID, b.FestivalID, b.BookingDate, b.Status, b.CreatedAt, b.UpdatedAt)
	if isDuplicateKey(err) {
		return engine.ErrAlreadyBooked
	}
	return err
}

// UpdateBookingDay rebooks an existing booking onto another day,
// preserving its identity and booking date. It returns
// engine.ErrBookingNotFound when the row no longer exists: a
// concurrent cancel can delete the booking between the caller's read
// and this update, and committing a move against a vanished row would
// report success for a booking the user no longer holds.
func (s *Store) UpdateBookingDay(ctx context.Context, bookingID, dayID, festivalID string, at time.Time) error {
	const q = `UPDATE bookings SET day_id = ?, festival_id = ?, updated_at = ? WHERE id = ?`
	res, err := s.conn(ctx).ExecContext(ctx, q, dayID, festivalID, at, bookingID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero matches is ambiguous: the row may be gone, or the update
		// was value-identical. Confirm with a locking read, which sees
		// committed deletes where a snapshot read would not.
		const check = `SELECT COUNT(*) FROM bookings WHERE id = ? FOR UPDATE`
		var exists int
		if err := s.conn(ctx).QueryRowContext(ctx, check, bookingID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return engine.ErrBookingNotFound
		}
	}
	return nil
}

// DeleteBooking removes a booking permanently. The slot it occupied
// becomes available the moment the enclosing transaction commits.
func (s *Store) DeleteBooking(ctx context.Context, bookingID string) error {
	const q = `DELETE FROM bookings WHERE id = ?`
	res, err := s.conn(ctx).ExecContext(ctx, q, bookingID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return engine.ErrBookingNotFound
	}
	return nil
}

// BookingDetail is a booking joined with the owning user and booked
// day, as shown on the admin listing and CSV export.
type BookingDetail struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	DayID       string    `json:"day_id"`
	DayDate     time.Time `json:"day_date"`
	Theme       string    `json:"theme"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
}

// ListBookingsDetailed returns every booking with user and day
// context, ordered by day date and then user name for stable output.
func (s *Store) ListBookingsDetailed(ctx context.Context) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, u.name, u.email, b.day_id, d.date, d.theme, b.booking_date, b.status
	           FROM bookings b
	           JOIN users u ON u.id = b.user_id
	           JOIN days d ON d.id = b.day_id
	           ORDER BY d.date, u.name`
	rows, err := s.conn(ctx).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.BookingID, &d.UserID, &d.UserName, &d.UserEmail,
			&d.DayID, &d.DayDate, &d.Theme, &d.BookingDate, &d.Status); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
