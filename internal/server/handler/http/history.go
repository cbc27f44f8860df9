package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/middleware"
	"github.com/avolkov/skycast/internal/models"
)

// HistoryService defines the interface for search-history operations
// required by the HTTP handlers.
type HistoryService interface {
	// Record appends one search entry for the user.
	Record(ctx context.Context, userID int64, city, lang string) error
	// List returns the user's history newest-first, capped server-side.
	List(ctx context.Context, userID int64) ([]models.SearchEntry, error)
}

// HistoryHandler handles HTTP requests for the user's search history.
type HistoryHandler struct {
	HistoryService HistoryService
	Log            *zap.Logger
}

type recordSearchRequest struct {
	City string `json:"city" validate:"required"`
	Lang string `json:"lang" validate:"required,oneof=en ru"`
}

// List handles GET /history, returning the newest-first entries.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	entries, err := h.HistoryService.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Record handles POST /history, appending one entry. Missing city or an
// unsupported lang responds 400.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordSearchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.HistoryService.Record(r.Context(), userID, req.City, req.Lang); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
