package models

// User is a registered account in the local (key-value backed) variant.
// The SQLite-backed auth server keeps its own user rows; see sqlstore.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address. Uniqueness is enforced at
	// write time by the user store, not by any constraint.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password. The hash
	// never leaves the process over the wire.
	PasswordHash string `json:"passwordHash"`

	// CreatedAt is the RFC 3339 time the account was created.
	CreatedAt string `json:"createdAt"`
}
