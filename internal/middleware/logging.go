package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs one structured line per request: method, path,
// status, latency and client IP, plus the user id when the request is
// authenticated. Responses at 400 and above log at warn level.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			fields := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", c.RealIP(),
			}
			if uid := c.Get("user_id"); uid != nil {
				fields = append(fields, "user_id", uid)
			}

			if status >= 400 {
				slog.Warn("request", fields...)
			} else {
				slog.Info("request", fields...)
			}
			return err
		}
	}
}
