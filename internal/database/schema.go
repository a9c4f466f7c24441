package database

import (
	"context"
	"database/sql"
)

// schema holds the idempotent DDL executed at startup. The UNIQUE
// index on bookings.user_id enforces one active booking per user at
// the storage level; the foreign keys keep bookings from referencing
// deleted days or festivals.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS festivals (
		id               CHAR(36)     NOT NULL,
		name             VARCHAR(255) NOT NULL,
		start_date       DATETIME     NOT NULL,
		end_date         DATETIME     NOT NULL,
		location         VARCHAR(255) NOT NULL,
		price_cents      INT UNSIGNED NOT NULL,
		capacity_per_day INT          NOT NULL DEFAULT 6,
		created_at       DATETIME     NOT NULL,
		updated_at       DATETIME     NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS days (
		id          CHAR(36)     NOT NULL,
		festival_id CHAR(36)     NOT NULL,
		date        DATETIME     NOT NULL,
		theme       VARCHAR(255) NOT NULL,
		menu        TEXT         NOT NULL,
		capacity    INT          NOT NULL,
		created_at  DATETIME     NOT NULL,
		updated_at  DATETIME     NOT NULL,
		PRIMARY KEY (id),
		KEY idx_days_festival (festival_id),
		CONSTRAINT fk_days_festival FOREIGN KEY (festival_id) REFERENCES festivals (id),
		CONSTRAINT chk_days_capacity CHECK (capacity >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id           CHAR(36)     NOT NULL,
		google_id    VARCHAR(64)  NOT NULL,
		email        VARCHAR(255) NOT NULL,
		name         VARCHAR(255) NOT NULL,
		email_opt_in TINYINT(1)   NOT NULL DEFAULT 1,
		is_admin     TINYINT(1)   NOT NULL DEFAULT 0,
		created_at   DATETIME     NOT NULL,
		updated_at   DATETIME     NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_google (google_id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id           CHAR(36)    NOT NULL,
		user_id      CHAR(36)    NOT NULL,
		day_id       CHAR(36)    NOT NULL,
		festival_id  CHAR(36)    NOT NULL,
		booking_date DATETIME    NOT NULL,
		status       VARCHAR(16) NOT NULL DEFAULT 'confirmed',
		created_at   DATETIME    NOT NULL,
		updated_at   DATETIME    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_user (user_id),
		KEY idx_bookings_day (day_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_day FOREIGN KEY (day_id) REFERENCES days (id),
		CONSTRAINT fk_bookings_festival FOREIGN KEY (festival_id) REFERENCES festivals (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables when they do not exist yet. It runs
// once at startup; statements are idempotent so repeated boots are
// safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
