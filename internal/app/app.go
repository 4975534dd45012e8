// Package app wires the Moodlog application together: the Echo instance,
// the global middleware chain, the JSON error handler, and the per-feature
// route registration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pville/moodlog/internal/apperror"
	"github.com/pville/moodlog/internal/config"
	"github.com/pville/moodlog/internal/genai"
	"github.com/pville/moodlog/internal/middleware"
)

// App holds the application's shared dependencies.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Redis  *redis.Client
	GenAI  *genai.Client
	Echo   *echo.Echo
}

// New creates the application with the global middleware chain and error
// handler installed. Routes are registered separately via RegisterRoutes.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client, gen *genai.Client) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = errorHandler

	middleware.TrustedProxies(e, trustedCIDRs())

	// Order matters: Recovery outermost so panics anywhere below still
	// produce a JSON 500, logging next so every request is recorded.
	e.Use(middleware.Recovery())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.CSRF())

	return &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		GenAI:  gen,
		Echo:   e,
	}
}

// Start begins listening on the configured port. Blocks until the server
// stops.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting server", "addr", addr, "env", a.Config.Env)
	return a.Echo.Start(addr)
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// trustedCIDRs lists the proxy networks whose X-Forwarded-For headers are
// believed. Covers loopback plus the RFC 1918 ranges where a reverse proxy
// or container ingress normally lives.
func trustedCIDRs() []string {
	return []string{
		"127.0.0.0/8",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"::1/128",
	}
}

// errorHandler converts errors returned by handlers into JSON responses.
// AppErrors map to their own status and type; echo's routing errors (404,
// 405) keep their status; anything else is a generic 500 with the detail
// kept server-side.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := map[string]string{
		"type":    "internal_error",
		"message": "An internal error occurred",
	}

	var appErr *apperror.AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		body["type"] = appErr.Type
		body["message"] = appErr.Message
		if appErr.Internal != nil {
			slog.Error("request failed",
				"type", appErr.Type,
				"path", c.Request().URL.Path,
				"error", appErr.Internal,
			)
		}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		body["type"] = "http_error"
		if msg, ok := httpErr.Message.(string); ok {
			body["message"] = msg
		} else {
			body["message"] = http.StatusText(code)
		}
	default:
		slog.Error("unhandled error",
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	if jsonErr := c.JSON(code, body); jsonErr != nil {
		slog.Error("failed to write error response", "error", jsonErr)
	}
}
