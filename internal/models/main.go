// Package models defines the core data structures for users and search history.
package models

import "time"

// Theme is a user's interface theme preference.
type Theme string

const (
	// ThemeSystem follows the client's OS preference. Default for new users.
	ThemeSystem Theme = "system"
	// ThemeLight forces the light theme.
	ThemeLight Theme = "light"
	// ThemeDark forces the dark theme.
	ThemeDark Theme = "dark"
)

// Valid reports whether t is one of the known theme values.
func (t Theme) Valid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// User represents a registered user.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// Email is the unique lowercase login email.
	Email string
	// Name is the display name chosen at registration.
	Name string
	// PasswordHash is the encoded password credential.
	PasswordHash string
	// Theme is the persisted interface theme preference.
	Theme Theme
	// ResetToken is the pending password reset token, empty when none is pending.
	ResetToken string
	// ResetExpires is the expiry of the pending reset token, zero when none is pending.
	ResetExpires time.Time
}

// SearchEntry is one append-only record of a city search performed by a user.
type SearchEntry struct {
	// City is the city text as searched.
	City string `json:"city"`
	// Lang is the language tag the search was made with.
	Lang string `json:"lang"`
	// CreatedAt is when the search was recorded.
	CreatedAt time.Time `json:"created_at"`
}
