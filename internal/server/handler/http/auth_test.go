package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/models"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	user         *models.User
	token        string
	err          error
	resetToken   string
	resetExpires time.Time
	loggedOut    []string
}

func (f *fakeAuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Logout(token string) {
	f.loggedOut = append(f.loggedOut, token)
}

func (f *fakeAuthService) RequestReset(ctx context.Context, email string) (string, time.Time, error) {
	return f.resetToken, f.resetExpires, f.err
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	return f.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	handler(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body, got %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	alice := &models.User{ID: 1, Email: "alice@example.com", Name: "Alice", Theme: models.ThemeSystem}

	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing email",
			body:         `{"name":"Alice","password":"hunter22"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "malformed email",
			body:         `{"email":"not-an-email","name":"Alice","password":"hunter22"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "short password",
			body:         `{"email":"alice@example.com","name":"Alice","password":"abc"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown field",
			body:         `{"email":"alice@example.com","name":"Alice","password":"hunter22","admin":true}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate email",
			body:         `{"email":"alice@example.com","name":"Alice","password":"hunter22"}`,
			service:      &fakeAuthService{err: apperr.New(apperr.Conflict, "email already registered")},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "success",
			body:         `{"email":"alice@example.com","name":"Alice","password":"hunter22"}`,
			service:      &fakeAuthService{user: alice, token: "tok123"},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AuthHandler{AuthService: tt.service, Log: zap.NewNop()}
			rec := postJSON(t, h.Register, tt.body)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
			body := decodeJSON(t, rec)
			if tt.expectedCode == http.StatusCreated {
				if body["token"] != "tok123" {
					t.Errorf("expected token in response, got %v", body)
				}
				user, _ := body["user"].(map[string]any)
				if user["email"] != "alice@example.com" || user["theme"] != "system" {
					t.Errorf("unexpected user payload: %v", user)
				}
			} else if body["error"] == "" {
				t.Errorf("expected error message in body, got %v", body)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	alice := &models.User{ID: 1, Email: "alice@example.com", Name: "Alice", Theme: models.ThemeDark}

	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "bad credentials",
			body:         `{"email":"alice@example.com","password":"wrong"}`,
			service:      &fakeAuthService{err: apperr.New(apperr.Auth, "invalid email or password")},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing password",
			body:         `{"email":"alice@example.com"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "success",
			body:         `{"email":"alice@example.com","password":"hunter22"}`,
			service:      &fakeAuthService{user: alice, token: "tok456"},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AuthHandler{AuthService: tt.service, Log: zap.NewNop()}
			rec := postJSON(t, h.Login, tt.body)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
			if tt.expectedCode == http.StatusOK {
				body := decodeJSON(t, rec)
				if body["token"] != "tok456" {
					t.Errorf("expected token in response, got %v", body)
				}
			}
		})
	}
}

func TestAuthHandler_RequestReset(t *testing.T) {
	expires := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("known email returns token", func(t *testing.T) {
		svc := &fakeAuthService{resetToken: "reset-token", resetExpires: expires}
		h := &AuthHandler{AuthService: svc, Log: zap.NewNop()}
		rec := postJSON(t, h.RequestReset, `{"email":"alice@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeJSON(t, rec)
		if body["success"] != true || body["resetToken"] != "reset-token" {
			t.Errorf("unexpected body: %v", body)
		}
		if body["expires"] != expires.Format(time.RFC3339) {
			t.Errorf("unexpected expires: %v", body["expires"])
		}
	})

	t.Run("unknown email still succeeds without token", func(t *testing.T) {
		h := &AuthHandler{AuthService: &fakeAuthService{}, Log: zap.NewNop()}
		rec := postJSON(t, h.RequestReset, `{"email":"ghost@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := decodeJSON(t, rec)
		if body["success"] != true {
			t.Errorf("expected success, got %v", body)
		}
		if _, present := body["resetToken"]; present {
			t.Errorf("token fields must be omitted for unknown emails: %v", body)
		}
	})
}

func TestAuthHandler_Reset(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "short new password",
			body:         `{"email":"a@b.com","resetToken":"tok","newPassword":"abc"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid token",
			body:         `{"email":"a@b.com","resetToken":"bad","newPassword":"hunter22"}`,
			service:      &fakeAuthService{err: apperr.New(apperr.Auth, "reset not valid").WithStatus(http.StatusBadRequest)},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "success",
			body:         `{"email":"a@b.com","resetToken":"tok","newPassword":"hunter22"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AuthHandler{AuthService: tt.service, Log: zap.NewNop()}
			rec := postJSON(t, h.Reset, tt.body)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
		})
	}
}
