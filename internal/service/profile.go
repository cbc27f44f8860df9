package service

import (
	"context"
	"fmt"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/models"
)

// ProfileService serves the authenticated user's record and persists theme
// preference changes.
type ProfileService struct {
	repo UserRepository
}

// NewProfileService constructs a ProfileService using the provided repository.
func NewProfileService(repo UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the user record for an authenticated id. A session that
// resolves to a missing user is treated as unauthenticated.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if u == nil {
		return nil, apperr.New(apperr.Auth, "unauthenticated")
	}
	return u, nil
}

// UpdateTheme validates and persists the user's theme preference.
func (s *ProfileService) UpdateTheme(ctx context.Context, userID int64, theme models.Theme) error {
	if !theme.Valid() {
		return apperr.Newf(apperr.Validation, "invalid theme %q", theme)
	}
	if err := s.repo.UpdateTheme(ctx, userID, theme); err != nil {
		return fmt.Errorf("updating theme: %w", err)
	}
	return nil
}
