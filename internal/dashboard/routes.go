package dashboard

import (
	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/auth"
)

// RegisterRoutes sets up the dashboard route. OptionalAuth (not RequireAuth)
// because the handler answers anonymous callers with a zeroed payload.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc auth.AuthService) {
	e.GET("/api/dashboard", h.GetDashboard, auth.OptionalAuth(authSvc))
}
