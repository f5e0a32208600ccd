// Package testutil provides shared helpers for DB-backed tests. Tests
// that need MySQL call NewTestDB and are skipped automatically when no
// server is reachable, so the unit-test suite stays runnable anywhere.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/event-booking/internal/database"
)

const defaultTestDSN = "root@tcp(localhost:3306)/event_booking_test?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true"

// NewTestDB opens the test database, applies the schema and returns the
// handle. The connection string comes from TEST_DATABASE_DSN. When the
// server cannot be reached the calling test is skipped.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("skipping MySQL integration tests: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		t.Fatalf("apply schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TruncateAll empties every table between tests. Foreign key checks are
// suspended so truncation order does not matter.
func TruncateAll(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"TRUNCATE TABLE bookings",
		"TRUNCATE TABLE events",
		"TRUNCATE TABLE categories",
		"TRUNCATE TABLE refresh_tokens",
		"TRUNCATE TABLE users",
		"SET FOREIGN_KEY_CHECKS = 1",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("truncate: %v", err)
		}
	}
}

// InsertUser creates a user row directly and returns its id.
func InsertUser(t *testing.T, db *sql.DB, email, role string) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, "x", role)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// InsertCategory creates a category row and returns its id.
func InsertCategory(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// InsertEvent creates an event row and returns its id.
func InsertEvent(t *testing.T, db *sql.DB, organizerID, categoryID uint64, title, date, status string, totalSeats uint32) uint64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO events
			(organizer_id, category_id, title, description, location,
			 event_date, event_time, timezone, total_seats, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		organizerID, categoryID, title, "test event", "Test Hall",
		date, "19:00:00", "UTC", totalSeats, status)
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}
