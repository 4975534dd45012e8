package insights

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/auth"
)

type Handler struct {
	service InsightService
}

func NewHandler(service InsightService) *Handler {
	return &Handler{service: service}
}

// GetReflection handles GET /api/ai-reflection.
func (h *Handler) GetReflection(c echo.Context) error {
	userID := auth.GetUserID(c)

	reflection, err := h.service.Reflection(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reflection)
}

// GetQuote handles GET /api/quote.
func (h *Handler) GetQuote(c echo.Context) error {
	userID := auth.GetUserID(c)

	quote, err := h.service.Quote(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"reflection": quote})
}

// GetTriggerAnalysis handles GET /api/trigger-detection.
func (h *Handler) GetTriggerAnalysis(c echo.Context) error {
	userID := auth.GetUserID(c)

	triggers, err := h.service.TriggerAnalysis(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"triggers": triggers})
}
