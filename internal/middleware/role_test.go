package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	t.Parallel()

	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	mw := RequireRole("ORGANIZER")

	invoke := func(role interface{}) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/my-events", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		if err := mw(ok)(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec
	}

	t.Run("allows listed role", func(t *testing.T) {
		if rec := invoke("ORGANIZER"); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects other role", func(t *testing.T) {
		if rec := invoke("ATTENDEE"); rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("rejects missing role", func(t *testing.T) {
		if rec := invoke(nil); rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("rejects non-string role claim", func(t *testing.T) {
		if rec := invoke(42); rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
