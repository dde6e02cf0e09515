// Package client is the Go counterpart of the browser-side auth shim:
// it talks to the local auth server's JSON endpoints, keeps the issued
// bearer token, and notifies subscribers of sign-in/sign-out
// transitions.
//
// Unlike the original shim, every call carries an explicit timeout via
// context plus a bounded retry with backoff, so a caller is never left
// pending indefinitely on server unavailability.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/evtrack/homeledger/internal/auth"
)

// ErrRequestFailed wraps any signup/signin rejection from the server.
// The server's error string is included in the message.
var ErrRequestFailed = errors.New("auth request failed")

const (
	defaultTimeout  = 10 * time.Second
	defaultRetries  = 2
	retryBackoff    = 500 * time.Millisecond
	backoffMultiple = 2
)

// SessionUser identifies the authenticated user inside a session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session mirrors the server's session payload.
type Session struct {
	User        SessionUser `json:"user"`
	AccessToken string      `json:"access_token,omitempty"`
}

// Client calls the local auth server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	retries int

	mu    sync.Mutex
	token string

	subsMu sync.Mutex
	subs   map[int]func(auth.Event, *Session)
	nextID int
}

// Option adjusts a Client.
type Option func(*Client)

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// New creates a client for the auth server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		retries: defaultRetries,
		subs:    make(map[int]func(auth.Event, *Session)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authResponse struct {
	User    *SessionUser `json:"user"`
	Session *Session     `json:"session"`
	Error   string       `json:"error"`
}

// SignUp registers an account. On success the issued token is retained
// and subscribers are notified of the sign-in.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/auth/signup", email, password)
}

// SignIn authenticates, retains the issued token and notifies
// subscribers.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/auth/signin", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*Session, error) {
	var resp authResponse
	status, err := c.post(ctx, path, map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", status)
		}
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}
	sess := resp.Session
	if sess != nil {
		if resp.User != nil {
			sess.User = *resp.User
		}
		c.mu.Lock()
		c.token = sess.AccessToken
		c.mu.Unlock()
	}
	c.notify(auth.SignedIn, sess)
	return sess, nil
}

// GetSession asks the server to decode the retained token. Returns nil
// without error when there is no token or verification fails; session
// lookup never errors on bad credentials, matching the server contract.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil, nil
	}

	var resp struct {
		Session *Session `json:"session"`
	}
	status, err := c.get(ctx, "/auth/session", token, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, nil
	}
	return resp.Session, nil
}

// SignOut tells the server, drops the retained token and notifies
// subscribers.
func (c *Client) SignOut(ctx context.Context) error {
	var resp struct{}
	if _, err := c.post(ctx, "/auth/signout", struct{}{}, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.notify(auth.SignedOut, nil)
	return nil
}

// ResetPassword requests a password reset. The local server only logs
// the request.
func (c *Client) ResetPassword(ctx context.Context, email, redirectTo string) error {
	var resp authResponse
	status, err := c.post(ctx, "/auth/reset-password",
		map[string]string{"email": email, "redirectTo": redirectTo}, &resp)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrRequestFailed, resp.Error)
	}
	return nil
}

// OnAuthStateChange subscribes to sign-in/sign-out notifications.
func (c *Client) OnAuthStateChange(fn func(auth.Event, *Session)) *auth.Subscription {
	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subsMu.Unlock()

	return auth.NewSubscription(func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	})
}

func (c *Client) notify(event auth.Event, sess *Session) {
	c.subsMu.Lock()
	fns := make([]func(auth.Event, *Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range fns {
		fn(event, sess)
	}
}

func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, out)
}

func (c *Client) get(ctx context.Context, path, token string, out any) (int, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req, nil
	}, out)
}

// do runs the request with bounded retries and exponential backoff.
// Only transport errors are retried; an HTTP response, whatever its
// status, is final.
func (c *Client) do(ctx context.Context, build func() (*http.Request, error), out any) (int, error) {
	backoff := retryBackoff
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= backoffMultiple
		}

		req, err := build()
		if err != nil {
			return 0, fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
		return resp.StatusCode, nil
	}

	return 0, fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
}
