package service

import (
	"context"
	"fmt"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/models"
)

// SearchRepository defines the persistence operations required by the
// history service.
type SearchRepository interface {
	// InsertSearch appends one search record for the user.
	InsertSearch(ctx context.Context, userID int64, city, lang string) error
	// ListSearches returns the user's history newest-first, capped at limit.
	ListSearches(ctx context.Context, userID int64, limit int) ([]models.SearchEntry, error)
}

// historyPageSize caps how many entries a history read returns.
const historyPageSize = 50

// supportedLangs are the language tags accepted for search records.
var supportedLangs = map[string]bool{"en": true, "ru": true}

// HistoryService implements the append-only search history.
type HistoryService struct {
	repo SearchRepository
}

// NewHistoryService constructs a HistoryService using the provided repository.
func NewHistoryService(repo SearchRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record appends one search entry for the user.
func (s *HistoryService) Record(ctx context.Context, userID int64, city, lang string) error {
	if city == "" {
		return apperr.New(apperr.Validation, "missing city")
	}
	if !supportedLangs[lang] {
		return apperr.Newf(apperr.Validation, "invalid lang %q", lang)
	}
	if err := s.repo.InsertSearch(ctx, userID, city, lang); err != nil {
		return fmt.Errorf("inserting search: %w", err)
	}
	return nil
}

// List returns the user's search history newest-first, at most 50 entries.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]models.SearchEntry, error) {
	entries, err := s.repo.ListSearches(ctx, userID, historyPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	return entries, nil
}
