// Package router wires HTTP paths to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/event-booking/internal/handler"
	"github.com/iliyamo/event-booking/internal/middleware"
	"github.com/iliyamo/event-booking/internal/model"
)

// RegisterRoutes registers the operational endpoints: liveness and the
// Prometheus scrape target.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the session endpoints. Register, login, refresh
// and logout take no bearer token; /me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.POST("/refresh", a.Refresh)
	e.POST("/logout", a.Logout)

	e.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the guest browse surface. The JSON feed is
// the only route behind the response cache: it takes no parameters, so
// one cached body serves every caller.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/", p.ListEvents)
	e.GET("/events/:id", p.GetEvent)
	e.GET("/api/events", p.APIEvents, cache)
}

// RegisterBooking registers the authenticated attendee surface. Any
// authenticated role may book; organizers attend events too.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("", middleware.JWTAuth(jwtSecret))
	g.POST("/book/:id", b.BookEvent)
	g.GET("/my-bookings", b.MyBookings)
}

// RegisterOrganizer registers the organizer-only surface.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
	g := e.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleOrganizer))
	g.POST("/create-event", o.CreateEvent)
	g.GET("/my-events", o.MyEvents)
}
