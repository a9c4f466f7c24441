package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

const festivalColumns = `id, name, start_date, end_date, location, price_cents, capacity_per_day, created_at, updated_at`

func scanFestival(row *sql.Row) (*model.Festival, error) {
	var f model.Festival
	err := row.Scan(&f.ID, &f.Name, &f.StartDate, &f.EndDate, &f.Location,
		&f.PriceCents, &f.CapacityPerDay, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrFestivalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFestival returns a festival by identifier.
func (s *Store) GetFestival(ctx context.Context, festivalID string) (*model.Festival, error) {
	const q = `SELECT ` + festivalColumns + ` FROM festivals WHERE id = ?`
	return scanFestival(s.conn(ctx).QueryRowContext(ctx, q, festivalID))
}

// FirstFestival returns the festival record. The deployment holds a
// single festival; ordering by created_at keeps the result stable if
// a second one is ever provisioned.
func (s *Store) FirstFestival(ctx context.Context) (*model.Festival, error) {
	const q = `SELECT ` + festivalColumns + ` FROM festivals ORDER BY created_at LIMIT 1`
	return scanFestival(s.conn(ctx).QueryRowContext(ctx, q))
}

// CreateFestival inserts the festival record at provisioning time.
func (s *Store) CreateFestival(ctx context.Context, f *model.Festival) error {
	const q = `INSERT INTO festivals (id, name, start_date, end_date, location, price_cents, capacity_per_day, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.conn(ctx).ExecContext(ctx, q,
		f.ID, f.Name, f.StartDate, f.EndDate, f.Location, f.PriceCents, f.CapacityPerDay, f.CreatedAt, f.UpdatedAt)
	return err
}

// UpdateFestival persists administrative edits to the festival record.
func (s *Store) UpdateFestival(ctx context.Context, f *model.Festival) error {
	f.UpdatedAt = time.Now().UTC()
	const q = `UPDATE festivals SET name = ?, start_date = ?, end_date = ?, location = ?,
	           price_cents = ?, capacity_per_day = ?, updated_at = ? WHERE id = ?`
	res, err := s.conn(ctx).ExecContext(ctx, q,
		f.Name, f.StartDate, f.EndDate, f.Location, f.PriceCents, f.CapacityPerDay, f.UpdatedAt, f.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := s.GetFestival(ctx, f.ID); getErr != nil {
			return getErr
		}
	}
	return nil
}
