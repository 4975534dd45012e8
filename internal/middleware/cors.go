package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API cross-origin,
	// e.g. the browser client at http://localhost:3000. "*" allows all.
	AllowedOrigins []string

	// AllowCredentials lets the browser attach cookies to cross-origin
	// requests. Required because sessions live in a cookie and the client
	// is served from its own origin.
	AllowCredentials bool
}

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Requested-With, X-CSRF-Token"
	corsMaxAge       = "3600"
)

// CORS answers preflights and stamps cross-origin response headers for the
// configured client origins. Requests from unlisted origins pass through
// without CORS headers; the browser then refuses the response on its side.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAll := false
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	// A wildcard origin combined with credentials would let any site make
	// authenticated calls. Keep the wildcard but drop the credentials.
	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS wildcard origin with credentials is insecure, disabling credentials")
		cfg.AllowCredentials = false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			if origin == "" || (!allowAll && !allowed[origin]) {
				return next(c)
			}

			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if c.Request().Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
