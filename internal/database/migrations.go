package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements executed at startup. Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS) so repeated boots are safe. The booking
// invariants live here rather than only in application checks: the
// unique key on bookings(event_id, user_id) makes double-booking
// impossible at the storage layer, and the unique key on
// categories(name) lets concurrent get-or-create calls collapse onto
// a single row.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		role          ENUM('ATTENDEE','ORGANIZER') NOT NULL DEFAULT 'ATTENDEE',
		is_active     TINYINT(1)      NOT NULL DEFAULT 1,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)        NOT NULL,
		expires_at DATETIME        NOT NULL,
		revoked_at DATETIME        NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS categories (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100)    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS events (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		organizer_id BIGINT UNSIGNED NOT NULL,
		category_id  BIGINT UNSIGNED NOT NULL,
		title        VARCHAR(100)    NOT NULL,
		description  TEXT            NOT NULL,
		location     VARCHAR(255)    NOT NULL,
		event_date   DATE            NOT NULL,
		event_time   TIME            NOT NULL,
		timezone     VARCHAR(64)     NOT NULL DEFAULT 'UTC',
		total_seats  INT UNSIGNED    NOT NULL,
		status       ENUM('draft','published') NOT NULL DEFAULT 'published',
		created_at   TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_events_status_date (status, event_date),
		KEY idx_events_organizer (organizer_id),
		KEY idx_events_category (category_id),
		CONSTRAINT fk_events_organizer FOREIGN KEY (organizer_id) REFERENCES users (id),
		CONSTRAINT fk_events_category FOREIGN KEY (category_id) REFERENCES categories (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reference  CHAR(36)        NOT NULL,
		event_id   BIGINT UNSIGNED NOT NULL,
		user_id    BIGINT UNSIGNED NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_reference (reference),
		UNIQUE KEY uq_bookings_event_user (event_id, user_id),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_event FOREIGN KEY (event_id) REFERENCES events (id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
