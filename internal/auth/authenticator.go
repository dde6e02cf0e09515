// Package auth implements the authentication core shared by both
// backends: bcrypt password verification, signed bearer tokens for the
// server variant, and the local session manager with its observer and
// idle-timeout machinery.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/evtrack/homeledger/internal/models"
)

var (
	// ErrInvalidCredentials is returned when no user matches the given
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailExists is returned on signup with an already-registered
	// email.
	ErrEmailExists = errors.New("email already registered")

	// ErrValidation is returned when a required field is missing.
	ErrValidation = errors.New("email and password required")
)

// UserStorage is the persistence interface the authenticator needs. Both
// the key-value user store and the SQLite user table satisfy it, so the
// same authenticator serves both variants.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator implements email/password authentication with
// bcrypt-hashed storage. Passwords are never persisted in clear text.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates an authenticator over the given user
// storage.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// Register creates a new account. Fails with ErrValidation when either
// field is empty and ErrEmailExists when the email is taken.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	existing, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the email and password, returning the matching
// user or ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
