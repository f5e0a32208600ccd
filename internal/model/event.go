package model

import "time"

// Event statuses. Draft events are only visible to their organizer;
// published events appear in public listings and can be booked.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
)

// Event represents a schedulable, capacity-bounded activity open for
// reservation. Capacity is fixed at creation: the `total_seats`
// column is never decremented. Remaining availability is always
// derived from the booking count, never stored.
//
// Fields:
//  ID          – primary key identifier.
//  OrganizerID – user who created and owns the event.
//  CategoryID  – category the event belongs to.
//  Title       – short human-readable name.
//  Description – free-form description text.
//  Location    – venue or address string.
//  Date        – calendar date of the event (DATE column).
//  Time        – local start time (TIME column, "HH:MM:SS").
//  Timezone    – IANA timezone name the date/time are anchored to.
//  TotalSeats  – fixed capacity, positive.
//  Status      – lifecycle status (draft | published).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64    // events.id
	OrganizerID uint64    // events.organizer_id
	CategoryID  uint64    // events.category_id
	Title       string    // events.title
	Description string    // events.description
	Location    string    // events.location
	Date        time.Time // events.event_date
	Time        string    // events.event_time
	Timezone    string    // events.timezone
	TotalSeats  uint32    // events.total_seats
	Status      string    // events.status
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}

// AvailableSeats derives the remaining capacity from the current
// booking count. The result is clamped at zero: the booking path
// prevents oversell, but nothing in the data model forbids a count
// above capacity, so display code must never render a negative.
func (e Event) AvailableSeats(booked int64) int64 {
	remaining := int64(e.TotalSeats) - booked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Category groups events under a display name. Categories are
// created implicitly the first time an organizer uses the name;
// the `name` column carries a unique key so concurrent creates
// collapse onto one row.
type Category struct {
	ID   uint64 // categories.id
	Name string // categories.name
}
