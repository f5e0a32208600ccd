package handler_test

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-booking/internal/config"
	"github.com/iliyamo/event-booking/internal/handler"
	"github.com/iliyamo/event-booking/internal/middleware"
	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
	"github.com/iliyamo/event-booking/internal/testutil"
)

// newAuthApp wires the session routes over the test database. Bcrypt
// runs at its minimum cost so the suite stays fast.
func newAuthApp(t *testing.T, db *sql.DB) *echo.Echo {
	t.Helper()

	cfg := config.Config{
		JWTSecret:      testSecret,
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}
	auth := handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))

	e := echo.New()
	e.POST("/register", auth.Register)
	e.POST("/login", auth.Login)
	e.POST("/refresh", auth.Refresh)
	e.POST("/logout", auth.Logout)
	e.GET("/me", auth.Me, middleware.JWTAuth(testSecret))
	return e
}

// tokensFrom pulls the access and refresh token strings out of an auth
// response body.
func tokensFrom(t *testing.T, body map[string]any) (access, refresh string) {
	t.Helper()
	a, ok := body["access"].(map[string]any)
	if !ok {
		t.Fatalf("missing access object in %v", body)
	}
	r, ok := body["refresh"].(map[string]any)
	if !ok {
		t.Fatalf("missing refresh object in %v", body)
	}
	access, _ = a["token"].(string)
	refresh, _ = r["token"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("empty token in auth response: %v", body)
	}
	return access, refresh
}

func TestAuthFlow(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.TruncateAll(t, db)
	e := newAuthApp(t, db)

	creds := map[string]any{"email": "Ana@Example.com", "password": "hunter22", "role": "ORGANIZER"}

	t.Run("register returns tokens and normalized identity", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodPost, "/register", "", creds)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
		}
		u, ok := body["user"].(map[string]any)
		if !ok {
			t.Fatalf("missing user object in %v", body)
		}
		if u["email"] != "ana@example.com" {
			t.Errorf("email = %v, want lowercased ana@example.com", u["email"])
		}
		if u["role"] != model.RoleOrganizer {
			t.Errorf("role = %v, want %s", u["role"], model.RoleOrganizer)
		}
		tokensFrom(t, body)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/register", "", creds)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("unknown role falls back to attendee", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodPost, "/register", "", map[string]any{
			"email": "bo@example.com", "password": "hunter22", "role": "WIZARD",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		u, _ := body["user"].(map[string]any)
		if u["role"] != model.RoleAttendee {
			t.Errorf("role = %v, want %s", u["role"], model.RoleAttendee)
		}
	})

	t.Run("login rejects wrong password and unknown email", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/login", "", map[string]any{
			"email": "ana@example.com", "password": "wrong",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("wrong password status = %d, want 401", rec.Code)
		}
		rec, _ = doJSON(t, e, http.MethodPost, "/login", "", map[string]any{
			"email": "nobody@example.com", "password": "hunter22",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("unknown email status = %d, want 401", rec.Code)
		}
	})

	var access, refresh string
	t.Run("login succeeds with the registered password", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodPost, "/login", "", map[string]any{
			"email": "ana@example.com", "password": "hunter22",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		access, refresh = tokensFrom(t, body)
	})

	t.Run("access token opens protected routes", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodGet, "/me", "Bearer "+access, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if body["role"] != model.RoleOrganizer {
			t.Errorf("role = %v, want %s", body["role"], model.RoleOrganizer)
		}
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		rec, body := doJSON(t, e, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": refresh})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		_, rotated := tokensFrom(t, body)
		if rotated == refresh {
			t.Fatal("refresh token was not rotated")
		}

		// The presented token is revoked by the rotation.
		rec, _ = doJSON(t, e, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": refresh})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("replayed token status = %d, want 401", rec.Code)
		}
		refresh = rotated
	})

	t.Run("logout by refresh token ends that session", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/logout", "", map[string]any{"refresh_token": refresh})
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		rec, _ = doJSON(t, e, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": refresh})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("revoked token status = %d, want 401", rec.Code)
		}
	})

	t.Run("logout by bearer revokes every session", func(t *testing.T) {
		var refreshes [2]string
		var bearer string
		for i := range refreshes {
			rec, body := doJSON(t, e, http.MethodPost, "/login", "", map[string]any{
				"email": "ana@example.com", "password": "hunter22",
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("login status = %d, want 200", rec.Code)
			}
			a, r := tokensFrom(t, body)
			bearer, refreshes[i] = "Bearer "+a, r
		}

		rec, _ := doJSON(t, e, http.MethodPost, "/logout", bearer, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204 (%s)", rec.Code, rec.Body.String())
		}
		for i, r := range refreshes {
			rec, _ = doJSON(t, e, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": r})
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("session %d status = %d, want 401", i, rec.Code)
			}
		}
	})

	t.Run("logout with nothing to revoke is a bad request", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/logout", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("garbage refresh token is unauthorized", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/refresh", "", map[string]any{"refresh_token": "deadbeef"})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
