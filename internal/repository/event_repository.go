package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/event-booking/internal/model"
)

// EventRepo provides persistence for events and the derived views the
// handlers need: public filtered listings with booking counts, single
// event detail, and the organizer's own events. Availability is never
// stored; every query that returns events also returns the current
// booking count so callers can derive it.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// EventFilter carries the optional public listing filters. All filters
// are conjunctive and sit on top of the fixed published-and-future
// baseline. Zero values mean "not set".
type EventFilter struct {
	Category string     // case-insensitive exact category name
	From     *time.Time // inclusive lower bound on event_date
	To       *time.Time // inclusive upper bound on event_date
	Search   string     // case-insensitive substring match on title
}

// where builds the WHERE clause for a public listing query. The baseline
// restricts results to published events whose date has not passed; each
// set filter appends one AND condition.
func (f EventFilter) where() (string, []any) {
	conds := []string{"e.status = 'published'", "e.event_date >= CURDATE()"}
	args := []any{}

	if f.Category != "" {
		conds = append(conds, "LOWER(c.name) = LOWER(?)")
		args = append(args, strings.TrimSpace(f.Category))
	}
	if f.From != nil {
		conds = append(conds, "e.event_date >= ?")
		args = append(args, f.From.Format("2006-01-02"))
	}
	if f.To != nil {
		conds = append(conds, "e.event_date <= ?")
		args = append(args, f.To.Format("2006-01-02"))
	}
	if f.Search != "" {
		conds = append(conds, "LOWER(e.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(f.Search))+"%")
	}
	return strings.Join(conds, " AND "), args
}

// EventRow is an event joined with its category name and current
// booking count.
type EventRow struct {
	model.Event
	CategoryName string
	Booked       int64
}

const eventSelect = `SELECT
		e.id, e.organizer_id, e.category_id, c.name,
		e.title, e.description, e.location,
		e.event_date, e.event_time, e.timezone,
		e.total_seats, e.status, e.created_at, e.updated_at,
		(SELECT COUNT(*) FROM bookings b WHERE b.event_id = e.id) AS booked
	FROM events e
	JOIN categories c ON c.id = e.category_id`

func scanEventRow(s interface{ Scan(...any) error }) (EventRow, error) {
	var row EventRow
	err := s.Scan(
		&row.ID, &row.OrganizerID, &row.CategoryID, &row.CategoryName,
		&row.Title, &row.Description, &row.Location,
		&row.Date, &row.Time, &row.Timezone,
		&row.TotalSeats, &row.Status, &row.CreatedAt, &row.UpdatedAt,
		&row.Booked,
	)
	return row, err
}

// ListPublished returns published, non-past events matching the filter,
// ordered by date then start time.
func (r *EventRepo) ListPublished(ctx context.Context, f EventFilter) ([]EventRow, error) {
	cond, args := f.where()
	q := eventSelect + " WHERE " + cond + " ORDER BY e.event_date ASC, e.event_time ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EventRow{}
	for rows.Next() {
		row, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetPublishedByID fetches one published event with its booking count.
// Drafts and unknown ids both return ErrEventNotFound so the public
// surface cannot tell them apart.
func (r *EventRepo) GetPublishedByID(ctx context.Context, id uint64) (EventRow, error) {
	q := eventSelect + " WHERE e.id = ? AND e.status = 'published' LIMIT 1"
	row, err := scanEventRow(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return EventRow{}, ErrEventNotFound
	}
	return row, err
}

// ListByOrganizer returns every event owned by the organizer, drafts and
// past dates included, with booking counts.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]EventRow, error) {
	q := eventSelect + " WHERE e.organizer_id = ? ORDER BY e.event_date ASC, e.event_time ASC"

	rows, err := r.db.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EventRow{}
	for rows.Next() {
		row, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Create inserts a new event and returns its id. Capacity and schedule
// are fixed at this point; no update path exists.
func (r *EventRepo) Create(ctx context.Context, ev model.Event) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events
			(organizer_id, category_id, title, description, location,
			 event_date, event_time, timezone, total_seats, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		ev.OrganizerID, ev.CategoryID, ev.Title, ev.Description, ev.Location,
		ev.Date.Format("2006-01-02"), ev.Time, ev.Timezone, ev.TotalSeats, ev.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
