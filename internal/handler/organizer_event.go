package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
)

// OrganizerHandler serves the organizer surface: creating events and
// listing the organizer's own events with booking counts.
type OrganizerHandler struct {
	Events     *repository.EventRepo
	Categories *repository.CategoryRepo
}

func NewOrganizerHandler(events *repository.EventRepo, categories *repository.CategoryRepo) *OrganizerHandler {
	if events == nil || categories == nil {
		panic("nil repository passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{Events: events, Categories: categories}
}

type createEventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM or HH:MM:SS
	Timezone    string `json:"timezone"`
	TotalSeats  uint32 `json:"total_seats"`
	Status      string `json:"status"` // draft | published (default published)
}

// validate normalizes the request and reports the first problem found.
func (req *createEventReq) validate() (model.Event, string) {
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	req.Category = strings.TrimSpace(req.Category)

	if req.Title == "" {
		return model.Event{}, "title is required"
	}
	if req.Location == "" {
		return model.Event{}, "location is required"
	}
	if req.Category == "" {
		return model.Event{}, "category is required"
	}
	if req.TotalSeats == 0 {
		return model.Event{}, "total_seats must be positive"
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return model.Event{}, "invalid date, expected YYYY-MM-DD"
	}

	rawTime := strings.TrimSpace(req.Time)
	var clock time.Time
	if clock, err = time.Parse("15:04:05", rawTime); err != nil {
		if clock, err = time.Parse("15:04", rawTime); err != nil {
			return model.Event{}, "invalid time, expected HH:MM or HH:MM:SS"
		}
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = "UTC"
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case "":
		status = model.EventStatusPublished
	case model.EventStatusDraft, model.EventStatusPublished:
	default:
		return model.Event{}, "status must be draft or published"
	}

	return model.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		Time:        clock.Format("15:04:05"),
		Timezone:    tz,
		TotalSeats:  req.TotalSeats,
		Status:      status,
	}, ""
}

// CreateEvent handles POST /create-event. The category is get-or-created
// by name; capacity and schedule are fixed once the row exists.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ev, problem := req.validate()
	if problem != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": problem})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.GetOrCreate(ctx, req.Category)
	if err != nil {
		slog.Error("get-or-create category failed", "error", err, "category", req.Category)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "category upsert failed"})
	}

	ev.OrganizerID = organizerID
	ev.CategoryID = cat.ID
	id, err := h.Events.Create(ctx, ev)
	if err != nil {
		slog.Error("create event failed", "error", err, "organizer_id", organizerID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"event": echo.Map{
			"id":          id,
			"title":       ev.Title,
			"category":    cat.Name,
			"date":        ev.Date.Format("2006-01-02"),
			"time":        ev.Time,
			"timezone":    ev.Timezone,
			"total_seats": ev.TotalSeats,
			"status":      ev.Status,
		},
	})
}

// organizerEventResp annotates an owned event with its booking count.
type organizerEventResp struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Status         string `json:"status"`
	TotalSeats     uint32 `json:"total_seats"`
	Bookings       int64  `json:"bookings"`
	AvailableSeats int64  `json:"available_seats"`
}

// MyEvents handles GET /my-events. Drafts and past events are included:
// organizers see everything they own.
func (h *OrganizerHandler) MyEvents(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Events.ListByOrganizer(ctx, organizerID)
	if err != nil {
		slog.Error("list organizer events failed", "error", err, "organizer_id", organizerID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]organizerEventResp, 0, len(rows))
	for _, row := range rows {
		out = append(out, organizerEventResp{
			ID:             row.ID,
			Title:          row.Title,
			Category:       row.CategoryName,
			Location:       row.Location,
			Date:           row.Date.Format("2006-01-02"),
			Time:           row.Time,
			Status:         row.Status,
			TotalSeats:     row.TotalSeats,
			Bookings:       row.Booked,
			AvailableSeats: row.AvailableSeats(row.Booked),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out, "count": len(out)})
}
