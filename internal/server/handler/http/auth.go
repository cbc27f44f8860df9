package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/middleware"
	"github.com/avolkov/skycast/internal/models"
)

// AuthService defines the interface for authentication operations required
// by the HTTP handlers.
type AuthService interface {
	// Register creates a user and returns it with a fresh session token.
	Register(ctx context.Context, email, name, password string) (*models.User, string, error)
	// Login verifies the credentials and returns the user with a fresh token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Logout revokes the presented token.
	Logout(token string)
	// RequestReset issues a reset token; empty token means unknown email.
	RequestReset(ctx context.Context, email string) (string, time.Time, error)
	// ResetPassword consumes a reset token and swaps the credential.
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

// AuthHandler handles HTTP requests for registration, login, logout and the
// password reset flow.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// userPayload is the JSON shape of a user record in responses.
type userPayload struct {
	ID    int64        `json:"id"`
	Email string       `json:"email"`
	Name  string       `json:"name"`
	Theme models.Theme `json:"theme"`
}

func userBody(u *models.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Name: u.Name, Theme: u.Theme}
}

// sessionResponse is the JSON shape of a successful register or login.
type sessionResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// Register handles POST /auth/register. Responds 201 with a session token
// and the new user, or 409 when the email is already registered.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	u, token, err := h.AuthService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: userBody(u)})
}

// Login handles POST /auth/login. Any credential mismatch responds 401
// without revealing whether the email exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	u, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: userBody(u)})
}

// Logout handles POST /auth/logout. Revokes the presented bearer token and
// always responds 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.AuthService.Logout(middleware.TokenFromContext(r.Context()))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RequestReset handles POST /auth/request-reset. Always responds 200 with
// success, leaving the token fields out for unknown emails so the response
// shape does not confirm account existence.
//
// The token is echoed in the response body in addition to the logged side
// channel; a hardened deployment would deliver it only out of band.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	token, expires, err := h.AuthService.RequestReset(r.Context(), req.Email)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	body := map[string]any{"success": true}
	if token != "" {
		body["resetToken"] = token
		body["expires"] = expires.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}

// Reset handles POST /auth/reset. Any token failure responds 400 with a
// uniform message.
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Email, req.ResetToken, req.NewPassword); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
