package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Register/login/logout are public; /me requires a session. The RequireAuth
// middleware is exported separately for other packages to guard their groups.
//
// POST endpoints are rate-limited to slow brute-force and credential
// stuffing attacks: 10 attempts per IP per minute for login, 5 for register.
func RegisterRoutes(e *echo.Echo, h *Handler, svc AuthService) {
	g := e.Group("/api/auth")

	g.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	g.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me, RequireAuth(svc))
}
