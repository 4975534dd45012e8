package journal

import (
	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/auth"
)

// RegisterRoutes sets up the entry routes on the given Echo instance.
// Entries are identity-scoped resources, so both routes are strict:
// no valid session means 401, never an empty result.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc auth.AuthService) {
	g := e.Group("/api/entries", auth.RequireAuth(authSvc))

	g.GET("", h.ListEntries)
	g.POST("", h.CreateEntry)
}
