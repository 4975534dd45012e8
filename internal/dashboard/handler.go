package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/auth"
	"github.com/pville/moodlog/internal/journal"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	service DashboardService
}

// NewHandler creates a new dashboard handler backed by the given service.
func NewHandler(service DashboardService) *Handler {
	return &Handler{service: service}
}

// GetDashboard returns the mood summary (GET /api/dashboard).
//
// This endpoint is deliberately lenient: it always answers 200 with a valid
// payload. A missing session or a storage failure yields zeros and an empty
// trend instead of an error, so the client chart never has to special-case
// failures. Identity-scoped resources (entries, insights) stay strict; only
// this aggregate view degrades gracefully.
func (h *Handler) GetDashboard(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return c.JSON(http.StatusOK, emptySummary())
	}

	summary, err := h.service.Summarize(c.Request().Context(), userID)
	if err != nil {
		slog.Error("dashboard summary failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return c.JSON(http.StatusOK, emptySummary())
	}

	return c.JSON(http.StatusOK, summary)
}

// emptySummary is the zeroed payload returned on missing sessions or errors.
func emptySummary() Summary {
	return Summary{AverageMood: 0, Trend: []journal.ScorePoint{}}
}
