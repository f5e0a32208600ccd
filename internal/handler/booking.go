package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-booking/internal/queue"
	"github.com/iliyamo/event-booking/internal/repository"
	queue_publisher "github.com/iliyamo/event-booking/internal/service"
)

// BookingHandler serves the authenticated booking flow: creating a
// booking and listing the caller's bookings.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
}

func NewBookingHandler(bookings *repository.BookingRepo, events *repository.EventRepo) *BookingHandler {
	if bookings == nil || events == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Events: events}
}

// BookEvent handles POST /book/:id. The capacity and duplicate checks
// run inside the repository's event-scoped transaction; this handler
// only maps outcomes. AlreadyBooked is deliberately not an error: the
// user's earlier booking stands, so the response is a 200 with a
// warning rather than a failure.
func (h *BookingHandler) BookEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Bookings.Create(ctx, userID, eventID)
	switch err {
	case nil:
	case repository.ErrEventNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case repository.ErrSoldOut:
		return c.JSON(http.StatusConflict, echo.Map{"error": "event sold out"})
	case repository.ErrAlreadyBooked:
		return c.JSON(http.StatusOK, echo.Map{"warning": "you have already booked this event"})
	default:
		slog.Error("create booking failed", "error", err, "event_id", eventID, "user_id", userID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	// Best-effort audit event after commit; a broker outage must never
	// fail the booking.
	if row, err := h.Events.GetPublishedByID(ctx, eventID); err == nil {
		ev := queue.BookingCreatedEvent{
			BookingID:      booking.ID,
			Reference:      booking.Reference,
			UserID:         userID,
			EventID:        eventID,
			EventTitle:     row.Title,
			EventLocation:  row.Location,
			EventDate:      row.Date.Format("2006-01-02"),
			EventTime:      row.Time,
			TotalSeats:     row.TotalSeats,
			AvailableSeats: row.AvailableSeats(row.Booked),
			BookedAt:       booking.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = queue_publisher.PublishBookingCreated(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking": echo.Map{
			"id":         booking.ID,
			"reference":  booking.Reference,
			"event_id":   booking.EventID,
			"created_at": booking.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
}

// bookingResp is one row of the caller's booking list, annotated with
// the event and its derived availability.
type bookingResp struct {
	ID             uint64 `json:"id"`
	Reference      string `json:"reference"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	EventLocation  string `json:"event_location"`
	EventDate      string `json:"event_date"`
	EventTime      string `json:"event_time"`
	TotalSeats     uint32 `json:"total_seats"`
	AvailableSeats int64  `json:"available_seats"`
	BookedAt       string `json:"booked_at"`
}

// MyBookings handles GET /my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListForUser(ctx, userID)
	if err != nil {
		slog.Error("list bookings failed", "error", err, "user_id", userID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]bookingResp, 0, len(rows))
	for _, row := range rows {
		available := int64(row.TotalSeats) - row.Booked
		if available < 0 {
			available = 0
		}
		out = append(out, bookingResp{
			ID:             row.ID,
			Reference:      row.Reference,
			EventID:        row.EventID,
			EventTitle:     row.EventTitle,
			EventLocation:  row.EventLocation,
			EventDate:      row.EventDate.Format("2006-01-02"),
			EventTime:      row.EventTime,
			TotalSeats:     row.TotalSeats,
			AvailableSeats: available,
			BookedAt:       row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out, "count": len(out)})
}
