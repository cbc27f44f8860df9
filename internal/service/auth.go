// Package service provides business logic for authentication, profile
// preferences, and search history, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/models"
	"github.com/avolkov/skycast/internal/password"
	"github.com/avolkov/skycast/internal/repository"
)

// UserRepository defines the persistence operations required by the
// authentication and profile services.
type UserRepository interface {
	// CreateUser inserts a new user and returns the stored record.
	// Returns repository.ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	// UserByEmail fetches a user by email; (nil, nil) when absent.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID fetches a user by id; (nil, nil) when absent.
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// UpdateTheme persists the user's theme preference.
	UpdateTheme(ctx context.Context, id int64, theme models.Theme) error
	// SetResetToken stores a pending reset token and expiry on the user.
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error
	// ConsumeResetToken atomically swaps the credential and clears the reset
	// fields when the token matches and has not expired. Returns false when
	// the reset was not valid.
	ConsumeResetToken(ctx context.Context, email, token, passwordHash string, now time.Time) (bool, error)
}

// SessionIssuer issues and revokes bearer tokens.
type SessionIssuer interface {
	Issue(userID int64) (string, error)
	Revoke(token string)
}

// resetTokenLen is the number of random bytes in a reset token.
const resetTokenLen = 16

// resetTTL is how long a reset token stays valid after issuance.
const resetTTL = 15 * time.Minute

// AuthService implements registration, login, logout, and the reset-token
// flow. Password hashing is deliberately expensive and is never performed
// under any lock.
type AuthService struct {
	repo     UserRepository
	sessions SessionIssuer
	log      *zap.Logger

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewAuthService constructs an AuthService using the provided repository,
// session registry, and logger.
func NewAuthService(repo UserRepository, sessions SessionIssuer, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, sessions: sessions, log: log, now: time.Now}
}

// normalizeEmail lowercases and trims an email for lookup and storage.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with the default theme and an immediately
// usable session token. A duplicate email yields a conflict error.
func (s *AuthService) Register(ctx context.Context, email, name, plain string) (*models.User, string, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "internal error", err)
	}

	u, err := s.repo.CreateUser(ctx, normalizeEmail(email), name, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, "", apperr.New(apperr.Conflict, "email already registered")
	}
	if err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.sessions.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session: %w", err)
	}
	return u, token, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password yield the same auth error so the response does not
// reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*models.User, string, error) {
	u, err := s.repo.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}
	if u == nil || !password.Verify(plain, u.PasswordHash) {
		return nil, "", apperr.New(apperr.Auth, "invalid email or password")
	}

	token, err := s.sessions.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session: %w", err)
	}
	return u, token, nil
}

// Logout revokes the presented token. Revoking an unknown token is a no-op.
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}

// RequestReset issues a short-lived single-use reset token for the account.
// Issuing a new token overwrites any prior pending one. For an unknown email
// it returns an empty token and no error, so callers can report success
// without confirming account existence. The token is emitted through the log
// as a stand-in for email delivery.
func (s *AuthService) RequestReset(ctx context.Context, email string) (string, time.Time, error) {
	u, err := s.repo.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("looking up user: %w", err)
	}
	if u == nil {
		return "", time.Time{}, nil
	}

	buf := make([]byte, resetTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.Internal, "internal error", err)
	}
	token := hex.EncodeToString(buf)
	expires := s.now().Add(resetTTL)

	if err := s.repo.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return "", time.Time{}, fmt.Errorf("storing reset token: %w", err)
	}

	// Stands in for an email send.
	s.log.Info("password reset token issued",
		zap.String("email", u.Email),
		zap.String("token", token),
		zap.Time("expires", expires),
	)
	return token, expires, nil
}

// ResetPassword consumes a pending reset token and replaces the credential.
// Missing, mismatched, and expired tokens all yield the same "reset not
// valid" failure; the credential swap and field clear happen atomically in
// the store, so a token can be consumed at most once.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPlain string) error {
	hash, err := password.Hash(newPlain)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "internal error", err)
	}

	ok, err := s.repo.ConsumeResetToken(ctx, normalizeEmail(email), token, hash, s.now())
	if err != nil {
		return fmt.Errorf("consuming reset token: %w", err)
	}
	if !ok {
		return apperr.New(apperr.Auth, "reset not valid").WithStatus(http.StatusBadRequest)
	}
	return nil
}
