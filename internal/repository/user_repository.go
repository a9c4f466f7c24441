package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/model"
)

const userColumns = `id, google_id, email, name, email_opt_in, is_admin, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.EmailOptIn, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns a user by identifier.
func (s *Store) GetUser(ctx context.Context, userID string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(s.conn(ctx).QueryRowContext(ctx, q, userID))
}

// GetUserByEmail returns a user by email address. Emails are stored
// lower-cased and unique.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(s.conn(ctx).QueryRowContext(ctx, q, email))
}

// UpsertGoogleUser creates a user on first sign-in and bumps
// updated_at on later ones. The Google subject is the stable identity
// key; email and name track whatever Google currently reports.
// isAdmin only ever promotes — a user once granted the admin flag
// keeps it even if removed from the ADMIN_EMAILS list, matching how
// the flag is otherwise edited directly in the database.
func (s *Store) UpsertGoogleUser(ctx context.Context, googleID, email, name string, isAdmin bool) (*model.User, error) {
	const find = `SELECT ` + userColumns + ` FROM users WHERE google_id = ?`
	u, err := scanUser(s.conn(ctx).QueryRowContext(ctx, find, googleID))
	now := time.Now().UTC()
	if err == nil {
		const up = `UPDATE users SET email = ?, name = ?, is_admin = (is_admin OR ?), updated_at = ? WHERE id = ?`
		if _, err := s.conn(ctx).ExecContext(ctx, up, email, name, isAdmin, now, u.ID); err != nil {
			return nil, err
		}
		u.Email = email
		u.Name = name
		u.IsAdmin = u.IsAdmin || isAdmin
		u.UpdatedAt = now
		return u, nil
	}
	if !errors.Is(err, engine.ErrUserNotFound) {
		return nil, err
	}
	nu := &model.User{
		ID:         uuid.NewString(),
		GoogleID:   googleID,
		Email:      email,
		Name:       name,
		EmailOptIn: true,
		IsAdmin:    isAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	const ins = `INSERT INTO users (id, google_id, email, name, email_opt_in, is_admin, created_at, updated_at)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.conn(ctx).ExecContext(ctx, ins,
		nu.ID, nu.GoogleID, nu.Email, nu.Name, nu.EmailOptIn, nu.IsAdmin, nu.CreatedAt, nu.UpdatedAt); err != nil {
		return nil, err
	}
	return nu, nil
}

// UpdateUserProfile applies the non-nil fields to the user's profile
// and returns the updated record.
func (s *Store) UpdateUserProfile(ctx context.Context, userID string, name *string, emailOptIn *bool) (*model.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name == nil && emailOptIn == nil {
		return u, nil
	}
	if name != nil {
		u.Name = *name
	}
	if emailOptIn != nil {
		u.EmailOptIn = *emailOptIn
	}
	u.UpdatedAt = time.Now().UTC()
	const q = `UPDATE users SET name = ?, email_opt_in = ?, updated_at = ? WHERE id = ?`
	if _, err := s.conn(ctx).ExecContext(ctx, q, u.Name, u.EmailOptIn, u.UpdatedAt, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}
