package service

import (
	"context"
	"testing"
	"time"

	"github.com/avolkov/skycast/internal/apperr"
	"github.com/avolkov/skycast/internal/models"
)

// fakeSearchRepo implements SearchRepository in memory, newest-first.
type fakeSearchRepo struct {
	entries map[int64][]models.SearchEntry
}

func newFakeSearchRepo() *fakeSearchRepo {
	return &fakeSearchRepo{entries: map[int64][]models.SearchEntry{}}
}

func (f *fakeSearchRepo) InsertSearch(_ context.Context, userID int64, city, lang string) error {
	entry := models.SearchEntry{City: city, Lang: lang, CreatedAt: time.Now()}
	f.entries[userID] = append([]models.SearchEntry{entry}, f.entries[userID]...)
	return nil
}

func (f *fakeSearchRepo) ListSearches(_ context.Context, userID int64, limit int) ([]models.SearchEntry, error) {
	entries := f.entries[userID]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func TestHistoryRecordAndList(t *testing.T) {
	svc := NewHistoryService(newFakeSearchRepo())
	ctx := context.Background()

	if err := svc.Record(ctx, 1, "London", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Record(ctx, 1, "Moscow", "ru"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].City != "Moscow" {
		t.Errorf("expected newest-first ordering, got %+v", entries)
	}
}

func TestHistoryRecord_Validation(t *testing.T) {
	svc := NewHistoryService(newFakeSearchRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		city string
		lang string
	}{
		{"missing city", "", "en"},
		{"unsupported lang", "Berlin", "de"},
		{"empty lang", "Berlin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Record(ctx, 1, tt.city, tt.lang)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if apperr.StatusOf(err) != 400 {
				t.Errorf("expected 400, got %d", apperr.StatusOf(err))
			}
		})
	}
}

func TestHistoryList_CappedAtPageSize(t *testing.T) {
	svc := NewHistoryService(newFakeSearchRepo())
	ctx := context.Background()

	for range 60 {
		if err := svc.Record(ctx, 1, "Oslo", "en"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 50 {
		t.Errorf("expected 50-row cap, got %d", len(entries))
	}
}
