// Package domain contains the core business entities for barledger.
// These are plain Go structs describing the bar's operators, its drink
// inventory and its cash ledger.
package domain

// User represents an operator allowed to log in.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Older databases stored it as a BLOB; both forms load into this field.
	// This should never be exposed or logged.
	PasswordHash string `json:"-"`
}

// NewUser creates a new User holding an already hashed password.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
	}
}
