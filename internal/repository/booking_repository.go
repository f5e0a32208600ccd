package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-booking/internal/model"
)

// BookingRepo owns the booking ledger. The ledger is append-only: rows
// are never updated or deleted, and the per-event row count is the sole
// source of truth for occupied seats.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create books one seat on an event for a user. The existence check,
// duplicate check, capacity check and insert all run inside a single
// transaction that first locks the event row with SELECT ... FOR UPDATE,
// so two requests racing for the last seat serialize on the event and
// the capacity invariant holds. The duplicate check runs before the
// capacity check: a user repeating a booking on a full event is told
// "already booked", not "sold out".
//
// Returned errors: ErrEventNotFound (missing or draft event),
// ErrAlreadyBooked, ErrSoldOut.
func (r *BookingRepo) Create(ctx context.Context, userID, eventID uint64) (model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the event row. Every concurrent booking for this event queues
	// here until the transaction commits or rolls back.
	var (
		totalSeats uint32
		status     string
	)
	err = tx.QueryRowContext(ctx,
		"SELECT total_seats, status FROM events WHERE id = ? FOR UPDATE",
		eventID).Scan(&totalSeats, &status)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrEventNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	if status != model.EventStatusPublished {
		return model.Booking{}, ErrEventNotFound
	}

	var existing int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id = ? AND user_id = ?",
		eventID, userID).Scan(&existing); err != nil {
		return model.Booking{}, err
	}
	if existing > 0 {
		return model.Booking{}, ErrAlreadyBooked
	}

	var booked int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id = ?",
		eventID).Scan(&booked); err != nil {
		return model.Booking{}, err
	}
	if booked >= int64(totalSeats) {
		return model.Booking{}, ErrSoldOut
	}

	ref := uuid.NewString()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (reference, event_id, user_id) VALUES (?,?,?)",
		ref, eventID, userID)
	if err != nil {
		// The unique key on (event_id, user_id) backstops the duplicate
		// check above; 1062 here means the pre-check raced another path.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Booking{}, ErrAlreadyBooked
		}
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}

	var createdAt time.Time
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM bookings WHERE id = ?", id).Scan(&createdAt); err != nil {
		return model.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true

	return model.Booking{
		ID:        uint64(id),
		Reference: ref,
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}, nil
}

// BookingRow is a booking joined with the fields of its event that the
// booking list renders, plus the event's current booking count for
// deriving availability.
type BookingRow struct {
	model.Booking
	EventTitle    string
	EventLocation string
	EventDate     time.Time
	EventTime     string
	TotalSeats    uint32
	Booked        int64
}

// ListForUser returns the user's bookings, newest first, each annotated
// with its event and that event's total booking count.
func (r *BookingRepo) ListForUser(ctx context.Context, userID uint64) ([]BookingRow, error) {
	const q = `SELECT
			b.id, b.reference, b.event_id, b.user_id, b.created_at,
			e.title, e.location, e.event_date, e.event_time, e.total_seats,
			(SELECT COUNT(*) FROM bookings b2 WHERE b2.event_id = e.id) AS booked
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BookingRow{}
	for rows.Next() {
		var row BookingRow
		if err := rows.Scan(
			&row.ID, &row.Reference, &row.EventID, &row.UserID, &row.CreatedAt,
			&row.EventTitle, &row.EventLocation, &row.EventDate, &row.EventTime,
			&row.TotalSeats, &row.Booked,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountForEvent returns the number of ledger rows for an event.
func (r *BookingRepo) CountForEvent(ctx context.Context, eventID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id = ?", eventID).Scan(&n)
	return n, err
}
