package insights

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/auth"
	"github.com/pville/moodlog/internal/middleware"
)

// RegisterRoutes sets up the AI insight routes on the given Echo instance.
// All three require a session. Each request fans out to the generation
// backend, so they carry a tighter rate limit than the rest of the API.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc auth.AuthService) {
	g := e.Group("/api", auth.RequireAuth(authSvc), middleware.RateLimit(20, time.Minute))

	g.GET("/ai-reflection", h.GetReflection)
	g.GET("/quote", h.GetQuote)
	g.GET("/trigger-detection", h.GetTriggerAnalysis)
}
