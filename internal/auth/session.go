package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/evtrack/homeledger/internal/models"
)

// Event is the kind of session transition delivered to subscribers.
type Event string

const (
	// SignedIn is fired after a successful sign-in.
	SignedIn Event = "SIGNED_IN"
	// SignedOut is fired after sign-out, including forced sign-out by
	// the idle watcher.
	SignedOut Event = "SIGNED_OUT"
)

// SessionStorage persists the single current session of the local
// variant.
type SessionStorage interface {
	Get() (*models.Session, error)
	Put(sess *models.Session) error
	Delete() error
}

// SessionManager owns the local variant's session lifecycle:
// SignedOut -> SignedIn -> SignedOut, with one observer notification at
// each transition. It is constructed once per process and owns its own
// subscriber set; there is no ambient global state.
type SessionManager struct {
	auth     *PasswordAuthenticator
	sessions SessionStorage
	logger   *slog.Logger

	mu     sync.Mutex
	subs   map[int]func(Event, *models.Session)
	nextID int
}

// Subscription is a handle returned by OnChange. Unsubscribe stops
// further deliveries to that callback.
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Unsubscribe removes the subscriber. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// NewSubscription wraps a cancel function in a Subscription handle, for
// other observer sources that share the subscription contract.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// NewSessionManager creates a session manager over the given
// authenticator and session storage.
func NewSessionManager(auth *PasswordAuthenticator, sessions SessionStorage, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
		subs:     make(map[int]func(Event, *models.Session)),
	}
}

// SignUp registers a new account. It does not establish a session; the
// caller signs in separately.
func (m *SessionManager) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	user, err := m.auth.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.logger.Info("user signed up", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// SignIn verifies the credentials, persists a session record and fires a
// SignedIn notification.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		UserID:    user.ID,
		Email:     user.Email,
		LoginTime: time.Now().UTC().Format(time.RFC3339),
	}
	if err := m.sessions.Put(sess); err != nil {
		return nil, err
	}

	m.logger.Info("user signed in", "user_id", user.ID)
	m.notify(SignedIn, sess)
	return sess, nil
}

// Session returns the currently persisted session, or nil when signed
// out.
func (m *SessionManager) Session(ctx context.Context) (*models.Session, error) {
	return m.sessions.Get()
}

// SignOut clears the session and fires a SignedOut notification. Any
// navigation is the caller's responsibility.
func (m *SessionManager) SignOut(ctx context.Context) error {
	if err := m.sessions.Delete(); err != nil {
		return err
	}
	m.logger.Info("user signed out")
	m.notify(SignedOut, nil)
	return nil
}

// OnChange registers a callback for session transitions. Multiple
// independent subscribers are supported; each receives the event kind
// and the new session value (nil after sign-out).
func (m *SessionManager) OnChange(fn func(Event, *models.Session)) *Subscription {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return &Subscription{cancel: func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}}
}

func (m *SessionManager) notify(event Event, sess *models.Session) {
	m.mu.Lock()
	fns := make([]func(Event, *models.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(event, sess)
	}
}
