// Package middleware provides the HTTP middleware for the Moodlog Echo
// server: request logging, panic recovery, security headers, CORS, CSRF
// protection, per-IP rate limiting, and trusted-proxy IP extraction.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger emits one structured line per request after it completes.
// Errors are passed along untouched so the central error handler can shape
// the response; the status logged is whatever that handler ends up writing.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			slog.Info("request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", c.Response().Status),
				slog.Duration("duration", time.Since(start)),
				slog.String("ip", c.RealIP()),
			)
			return nil
		}
	}
}
