package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/evtrack/homeledger/internal/auth"
	"github.com/evtrack/homeledger/internal/server"
	"github.com/evtrack/homeledger/internal/sqlstore"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	store, err := sqlstore.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwt := auth.NewJWTManager("test_secret", time.Hour)
	srv := server.New(store, jwt, filepath.Join(dir, "migrations"), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClientFlow(t *testing.T) {
	ts := newBackend(t)
	ctx := context.Background()
	c := New(ts.URL, WithTimeout(5*time.Second), WithRetries(0))

	var events []auth.Event
	sub := c.OnAuthStateChange(func(e auth.Event, s *Session) {
		events = append(events, e)
	})
	defer sub.Unsubscribe()

	t.Run("sign up establishes a session", func(t *testing.T) {
		sess, err := c.SignUp(ctx, "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		if sess == nil || sess.AccessToken == "" {
			t.Fatalf("Expected session with token, got %+v", sess)
		}
		if len(events) != 1 || events[0] != auth.SignedIn {
			t.Errorf("Expected SignedIn event, got %v", events)
		}
	})

	t.Run("get session round trips the token", func(t *testing.T) {
		sess, err := c.GetSession(ctx)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if sess == nil || sess.User.Email != "a@x.com" {
			t.Fatalf("Expected session for a@x.com, got %+v", sess)
		}
	})

	t.Run("sign out clears the token", func(t *testing.T) {
		if err := c.SignOut(ctx); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}
		if events[len(events)-1] != auth.SignedOut {
			t.Errorf("Expected SignedOut event, got %v", events)
		}

		sess, err := c.GetSession(ctx)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if sess != nil {
			t.Errorf("Expected nil session after sign-out, got %+v", sess)
		}
	})

	t.Run("bad credentials surface the server error", func(t *testing.T) {
		_, err := c.SignIn(ctx, "a@x.com", "wrong")
		if !errors.Is(err, ErrRequestFailed) {
			t.Fatalf("Expected ErrRequestFailed, got %v", err)
		}
	})

	t.Run("reset password acknowledges", func(t *testing.T) {
		if err := c.ResetPassword(ctx, "a@x.com", "http://localhost/reset"); err != nil {
			t.Fatalf("ResetPassword failed: %v", err)
		}
	})
}

func TestClientUnavailableServer(t *testing.T) {
	// Reserve an address and close it so the port refuses connections.
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	c := New(url, WithTimeout(time.Second), WithRetries(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := c.SignIn(ctx, "a@x.com", "pw")
	if err == nil {
		t.Fatal("Expected error against unavailable server")
	}
	if time.Since(start) > 4*time.Second {
		t.Errorf("Call did not respect timeout/retry bounds: %v", time.Since(start))
	}
}
