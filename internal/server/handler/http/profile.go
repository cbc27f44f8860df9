package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/middleware"
	"github.com/avolkov/skycast/internal/models"
)

// ProfileService defines the interface for profile operations required by
// the HTTP handlers.
type ProfileService interface {
	// Get returns the user record for an authenticated id.
	Get(ctx context.Context, userID int64) (*models.User, error)
	// UpdateTheme validates and persists the theme preference.
	UpdateTheme(ctx context.Context, userID int64, theme models.Theme) error
}

// ProfileHandler handles HTTP requests for the authenticated user's record
// and theme preference.
type ProfileHandler struct {
	ProfileService ProfileService
	Log            *zap.Logger
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=system light dark"`
}

// Me handles GET /me, returning the authenticated user's record.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	u, err := h.ProfileService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, userBody(u))
}

// UpdateTheme handles PUT /me/theme, persisting and echoing the theme.
// An unknown theme value responds 400.
func (h *ProfileHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.ProfileService.UpdateTheme(r.Context(), userID, models.Theme(req.Theme)); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
