// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking transaction commits.
// It contains enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID      uint64 `json:"booking_id"`
	Reference      string `json:"reference"`
	UserID         uint64 `json:"user_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	EventLocation  string `json:"event_location"`
	EventDate      string `json:"event_date"`
	EventTime      string `json:"event_time"`
	TotalSeats     uint32 `json:"total_seats"`
	AvailableSeats int64  `json:"available_seats"`
	BookedAt       string `json:"booked_at"`
}
