package journal

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pville/moodlog/internal/apperror"
	"github.com/pville/moodlog/internal/auth"
)

// Handler handles HTTP requests for mood entries. Handlers are thin:
// bind request, call service, write JSON. No business logic lives here.
type Handler struct {
	service EntryService
}

// NewHandler creates a new entry handler backed by the given service.
func NewHandler(service EntryService) *Handler {
	return &Handler{service: service}
}

// ListEntries returns all of the caller's entries as JSON (GET /api/entries).
// Entries are newest-first with tags attached. A userId query parameter is
// accepted for compatibility but ignored -- entries are always scoped to
// the session identity.
func (h *Handler) ListEntries(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return apperror.NewUnauthorized("authentication required")
	}

	entries, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	// Return empty array instead of null when no entries exist.
	if entries == nil {
		entries = []Entry{}
	}

	return c.JSON(http.StatusOK, entries)
}

// CreateEntry records a new mood entry (POST /api/entries).
func (h *Handler) CreateEntry(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return apperror.NewUnauthorized("authentication required")
	}

	var req CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	entry, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, entry)
}
