package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

const dayColumns = `id, festival_id, date, theme, menu, capacity, created_at, updated_at`

func scanDay(row *sql.Row) (*model.Day, error) {
	var d model.Day
	err := row.Scan(&d.ID, &d.FestivalID, &d.Date, &d.Theme, &d.Menu, &d.Capacity, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrDayNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDay returns a day without locking it.
func (s *Store) GetDay(ctx context.Context, dayID string) (*model.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = ?`
	return scanDay(s.conn(ctx).QueryRowContext(ctx, q, dayID))
}

// GetDayForUpdate returns a day and locks its row for the remainder
// of the transaction. Every capacity check in the booking engine goes
// through this lock, which serializes concurrent admissions to the
// same day. Calling it outside a transaction locks nothing, so the
// engine only uses it inside WithTx.
func (s *Store) GetDayForUpdate(ctx context.Context, dayID string) (*model.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = ? FOR UPDATE`
	return scanDay(s.conn(ctx).QueryRowContext(ctx, q, dayID))
}

// CreateDay inserts a new day into the catalog.
func (s *Store) CreateDay(ctx context.Context, d *model.Day) error {
	const q = `INSERT INTO days (id, festival_id, date, theme, menu, capacity, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.conn(ctx).ExecContext(ctx, q,
		d.ID, d.FestivalID, d.Date, d.Theme, d.Menu, d.Capacity, d.CreatedAt, d.UpdatedAt)
	return err
}

// UpdateDay persists edits to a day's date, theme, menu and capacity.
// Lowering the capacity below the current occupancy does not evict
// existing bookings; it only blocks new admissions.
func (s *Store) UpdateDay(ctx context.Context, d *model.Day) error {
	const q = `UPDATE days SET date = ?, theme = ?, menu = ?, capacity = ?, updated_at = ? WHERE id = ?`
	res, err := s.conn(ctx).ExecContext(ctx, q, d.Date, d.Theme, d.Menu, d.Capacity, d.UpdatedAt, d.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports zero affected rows for value-identical updates
		// too, so confirm the row is really absent before failing.
		if _, getErr := s.GetDay(ctx, d.ID); getErr != nil {
			return getErr
		}
	}
	return nil
}

// DeleteDay removes a day. Callers are responsible for the
// has-bookings guard (see engine.DeleteDay).
func (s *Store) DeleteDay(ctx context.Context, dayID string) error {
	const q = `DELETE FROM days WHERE id = ?`
	res, err := s.conn(ctx).ExecContext(ctx, q, dayID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return engine.ErrDayNotFound
	}
	return nil
}

// DayOccupancy is a catalog day together with its live booking count,
// as served on the public days listing.
type DayOccupancy struct {
	model.Day
	TicketsSold int `json:"tickets_sold"`
	Available   int `json:"available"`
}

// ListDaysWithOccupancy returns all days ordered by date, each with
// the number of bookings currently referencing it. Counts come from
// the bookings table on every call; the read path carries no derived
// column that could go stale.
func (s *Store) ListDaysWithOccupancy(ctx context.Context) ([]DayOccupancy, error) {
	const q = `SELECT d.id, d.festival_id, d.date, d.theme, d.menu, d.capacity, d.created_at, d.updated_at,
	                  COUNT(b.id)
	           FROM days d
	           LEFT JOIN bookings b ON b.day_id = d.id
	           GROUP BY d.id, d.festival_id, d.date, d.theme, d.menu, d.capacity, d.created_at, d.updated_at
	           ORDER BY d.date`
	rows, err := s.conn(ctx).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	days := make([]DayOccupancy, 0)
	for rows.Next() {
		var d DayOccupancy
		if err := rows.Scan(&d.ID, &d.FestivalID, &d.Date, &d.Theme, &d.Menu, &d.Capacity,
			&d.CreatedAt, &d.UpdatedAt, &d.TicketsSold); err != nil {
			return nil, err
		}
		d.Available = d.Capacity - d.TicketsSold
		if d.Available < 0 {
			// Capacity may have been lowered below occupancy; existing
			// bookings stay, so report zero availability rather than a
			// negative number.
			d.Available = 0
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
