package repository

import (
	"context"
	"database/sql"

	"github.com/avolkov/skycast/internal/models"
)

// PostgresSearchRepository implements search-history persistence on a
// PostgreSQL database. Entries are append-only; they are never mutated.
type PostgresSearchRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSearchRepository creates a PostgresSearchRepository with the
// given database connection.
func NewPostgresSearchRepository(db *sql.DB) *PostgresSearchRepository {
	return &PostgresSearchRepository{DB: db}
}

// InsertSearch appends one search record for the user.
func (r *PostgresSearchRepository) InsertSearch(ctx context.Context, userID int64, city, lang string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO searches (user_id, city, lang) VALUES ($1, $2, $3)`,
		userID, city, lang,
	)
	return err
}

// ListSearches returns the user's search history newest-first, capped at
// limit rows. The id tiebreak keeps ordering stable for entries created in
// the same instant.
func (r *PostgresSearchRepository) ListSearches(ctx context.Context, userID int64, limit int) ([]models.SearchEntry, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT city, lang, created_at FROM searches
          WHERE user_id = $1
          ORDER BY created_at DESC, id DESC
          LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.SearchEntry{}
	for rows.Next() {
		var e models.SearchEntry
		if err := rows.Scan(&e.City, &e.Lang, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
