package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: the filtered
// event listing, event detail and the lean JSON feed.
type PublicHandler struct {
	Events *repository.EventRepo
}

func NewPublicHandler(events *repository.EventRepo) *PublicHandler {
	if events == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Events: events}
}

// eventResp is the full event representation used by listing and detail.
type eventResp struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Category       string `json:"category"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Timezone       string `json:"timezone"`
	TotalSeats     uint32 `json:"total_seats"`
	AvailableSeats int64  `json:"available_seats"`
}

func toEventResp(row repository.EventRow) eventResp {
	return eventResp{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Location:       row.Location,
		Category:       row.CategoryName,
		Date:           row.Date.Format("2006-01-02"),
		Time:           row.Time,
		Timezone:       row.Timezone,
		TotalSeats:     row.TotalSeats,
		AvailableSeats: row.AvailableSeats(row.Booked),
	}
}

// parseEventFilter reads the optional category/from/to/search query
// parameters. Malformed dates are a validation error surfaced to the
// caller, never an unhandled fault.
func parseEventFilter(c echo.Context) (repository.EventFilter, error) {
	f := repository.EventFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
	}
	if raw := strings.TrimSpace(c.QueryParam("from")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid 'from' date, expected YYYY-MM-DD")
		}
		f.From = &d
	}
	if raw := strings.TrimSpace(c.QueryParam("to")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid 'to' date, expected YYYY-MM-DD")
		}
		f.To = &d
	}
	return f, nil
}

// ListEvents handles GET /. It returns published, non-past events
// matching the optional conjunctive filters.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	f, err := parseEventFilter(c)
	if err != nil {
		he := err.(*echo.HTTPError)
		return c.JSON(he.Code, echo.Map{"error": he.Message})
	}

	rows, err := h.Events.ListPublished(c.Request().Context(), f)
	if err != nil {
		slog.Error("list events failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]eventResp, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEventResp(row))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out, "count": len(out)})
}

// GetEvent handles GET /events/:id. Unknown ids and drafts both yield
// 404 so the public surface never leaks unpublished events.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	row, err := h.Events.GetPublishedByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		slog.Error("get event failed", "error", err, "event_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toEventResp(row))
}

// apiEventResp is the lean per-event shape of the JSON feed.
type apiEventResp struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	TotalSeats     uint32 `json:"total_seats"`
	AvailableSeats int64  `json:"available_seats"`
}

// APIEvents handles GET /api/events: a bare JSON array of published
// events. It takes no parameters and has no error path beyond a 500.
func (h *PublicHandler) APIEvents(c echo.Context) error {
	rows, err := h.Events.ListPublished(c.Request().Context(), repository.EventFilter{})
	if err != nil {
		slog.Error("api events failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]apiEventResp, 0, len(rows))
	for _, row := range rows {
		out = append(out, apiEventResp{
			ID:             row.ID,
			Title:          row.Title,
			Location:       row.Location,
			Date:           row.Date.Format("2006-01-02"),
			Time:           row.Time,
			TotalSeats:     row.TotalSeats,
			AvailableSeats: row.AvailableSeats(row.Booked),
		})
	}
	return c.JSON(http.StatusOK, out)
}
