package types

import "time"

// User represents an account in the system.
// Accounts are created by the seed command and are read-only at runtime.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name. Lookups are case-insensitive.
	Username string `json:"username" db:"username"`

	// Role indicates the user's authorization level (e.g., "admin").
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
