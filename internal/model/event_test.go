package model

import "testing"

func TestEventAvailableSeats(t *testing.T) {
	t.Parallel()

	e := Event{TotalSeats: 100}

	t.Run("no bookings", func(t *testing.T) {
		if got := e.AvailableSeats(0); got != 100 {
			t.Fatalf("expected 100, got %d", got)
		}
	})

	t.Run("partially booked", func(t *testing.T) {
		if got := e.AvailableSeats(37); got != 63 {
			t.Fatalf("expected 63, got %d", got)
		}
	})

	t.Run("exactly full", func(t *testing.T) {
		if got := e.AvailableSeats(100); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})

	t.Run("clamps oversold count to zero", func(t *testing.T) {
		if got := e.AvailableSeats(120); got != 0 {
			t.Fatalf("expected clamp to 0, got %d", got)
		}
	})
}
