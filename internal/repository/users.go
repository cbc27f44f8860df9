// Package repository provides PostgreSQL persistence for users and search
// history.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/avolkov/skycast/internal/models"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already
// registered.
var ErrDuplicateEmail = errors.New("email already registered")

// uniqueViolation is the PostgreSQL error code for unique-constraint breaches.
const uniqueViolation = "23505"

// PostgresUserRepository implements user persistence on a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a PostgresUserRepository with the given
// database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const userColumns = `id, email, name, password_hash, theme, reset_token, reset_expires`

// scanUser reads one user row, mapping NULL reset fields to zero values.
func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var token sql.NullString
	var expires sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Theme, &token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.ResetToken = token.String
	if expires.Valid {
		u.ResetExpires = expires.Time
	}
	return &u, nil
}

// CreateUser inserts a new user with the default theme and returns the stored
// record. Returns ErrDuplicateEmail if the email is already registered.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3)
         RETURNING `+userColumns,
		email, name, passwordHash,
	)
	u, err := scanUser(row)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, ErrDuplicateEmail
	}
	return u, err
}

// UserByEmail fetches a user by email. A missing user returns (nil, nil);
// absence is not an error.
func (r *PostgresUserRepository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

// UserByID fetches a user by id. A missing user returns (nil, nil).
func (r *PostgresUserRepository) UserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// UpdateTheme persists the user's theme preference.
func (r *PostgresUserRepository) UpdateTheme(ctx context.Context, id int64, theme models.Theme) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET theme = $1 WHERE id = $2`,
		string(theme), id,
	)
	return err
}

// SetResetToken stores a pending reset token and its expiry on the user,
// overwriting any prior pending token.
func (r *PostgresUserRepository) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET reset_token = $1, reset_expires = $2 WHERE id = $3`,
		token, expires, id,
	)
	return err
}

// ConsumeResetToken atomically replaces the user's credential and clears the
// pending reset fields, but only when the stored token matches exactly and
// has not expired at now. Returns true when a row was updated; false means
// the reset was not valid, with no distinction as to why.
func (r *PostgresUserRepository) ConsumeResetToken(ctx context.Context, email, token, passwordHash string, now time.Time) (bool, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE users
            SET password_hash = $1, reset_token = NULL, reset_expires = NULL
          WHERE email = $2 AND reset_token = $3 AND reset_expires >= $4`,
		passwordHash, email, token, now,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
