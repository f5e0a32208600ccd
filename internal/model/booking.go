package model

import "time"

// Booking records a single user's reservation against one event.
// Bookings are immutable once created: there is no cancellation or
// modification path, so the ledger row count per event is the sole
// source of truth for occupied seats. The (event_id, user_id) pair
// carries a unique key so a user can hold at most one booking per
// event regardless of request interleaving.
//
// Fields:
//  ID        – primary key identifier.
//  Reference – opaque UUID handed to the client.
//  EventID   – event being booked.
//  UserID    – user holding the booking.
//  CreatedAt – when the booking was made.
type Booking struct {
	ID        uint64    // bookings.id
	Reference string    // bookings.reference
	EventID   uint64    // bookings.event_id
	UserID    uint64    // bookings.user_id
	CreatedAt time.Time // bookings.created_at
}
