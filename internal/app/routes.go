package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/auth"
	"github.com/pville/moodlog/internal/dashboard"
	"github.com/pville/moodlog/internal/insights"
	"github.com/pville/moodlog/internal/journal"
)

// RegisterRoutes constructs every feature's repository/service/handler
// stack and mounts its routes. Construction order follows dependency
// order: auth first because the other features guard their routes with
// its session middleware.
func (a *App) RegisterRoutes() {
	a.Echo.GET("/healthz", healthz)

	authRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(authRepo, a.Redis, a.Config.Auth.SessionTTL)
	authHandler := auth.NewHandler(authService)
	auth.RegisterRoutes(a.Echo, authHandler, authService)

	entryRepo := journal.NewEntryRepository(a.DB)
	entryService := journal.NewEntryService(entryRepo)
	entryHandler := journal.NewHandler(entryService)
	journal.RegisterRoutes(a.Echo, entryHandler, authService)

	dashboardService := dashboard.NewDashboardService(entryRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	dashboard.RegisterRoutes(a.Echo, dashboardHandler, authService)

	insightService := insights.NewInsightService(entryRepo, a.GenAI)
	insightHandler := insights.NewHandler(insightService)
	insights.RegisterRoutes(a.Echo, insightHandler, authService)
}

// healthz reports liveness for load balancers and container probes.
func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
