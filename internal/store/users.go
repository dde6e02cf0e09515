package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evtrack/homeledger/internal/models"
)

// UserStore keeps the registered-user list under the global users key.
// It satisfies the auth package's UserStorage interface, so the local
// variant plugs into the same authenticator as the SQLite-backed server.
type UserStore struct {
	backend Backend
	prefix  string
}

// NewUserStore creates a user store over the given backend.
func NewUserStore(backend Backend, prefix string) *UserStore {
	return &UserStore{backend: backend, prefix: prefix}
}

// CreateUser appends a new user, enforcing email uniqueness at write
// time. Assigns an id and creation timestamp when unset.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	users, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == user.Email {
			return fmt.Errorf("%s: %w", user.Email, ErrEmailExists)
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	users = append(users, *user)
	return s.save(users)
}

// GetUserByEmail returns the user with the given email, or nil if no
// such user is registered.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetUserByID returns the user with the given id, or nil if absent.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *UserStore) load() ([]models.User, error) {
	raw, ok, err := s.backend.Get(UsersKey(s.prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if !ok {
		return []models.User{}, nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (s *UserStore) save(users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := s.backend.Set(UsersKey(s.prefix), string(raw)); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	return nil
}
