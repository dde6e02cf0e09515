// Package local assembles the file-backed variant of the application
// from configuration: the single-file key-value store, password
// authentication against the stored user list, and the session manager
// with its idle watcher. Embedders construct an App once and drive it
// from their UI loop.
package local

import (
	"context"
	"log/slog"
	"time"

	"github.com/evtrack/homeledger/internal/auth"
	"github.com/evtrack/homeledger/internal/config"
	"github.com/evtrack/homeledger/internal/store"
)

// App is the assembled local variant. Records exposes the per-entity
// record stores; Sessions drives sign-up, sign-in and sign-out.
type App struct {
	Records  *store.Store
	Sessions *auth.SessionManager

	idleTimeout time.Duration
	logger      *slog.Logger
}

// Open builds the local variant from cfg: the data file lives at
// cfg.Storage.DataPath, every key is namespaced under
// cfg.Storage.KeyPrefix, and idle sign-out uses cfg.Auth.IdleTimeout.
func Open(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := store.OpenFile(cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}
	st := store.New(backend, cfg.Storage.KeyPrefix)

	authn := auth.NewPasswordAuthenticator(st.Users)
	sessions := auth.NewSessionManager(authn, st.Sessions, logger)

	return &App{
		Records:     st,
		Sessions:    sessions,
		idleTimeout: cfg.Auth.IdleTimeout,
		logger:      logger,
	}, nil
}

// StartIdleWatcher starts a watcher that signs the current user out once
// no activity has been reported for the configured idle timeout. Callers
// route user input to Touch and Stop the watcher on teardown.
func (a *App) StartIdleWatcher(ctx context.Context) *auth.IdleWatcher {
	return auth.NewIdleWatcher(a.idleTimeout, func() { a.signOutIdle(ctx) })
}

func (a *App) signOutIdle(ctx context.Context) {
	a.logger.Info("idle timeout reached, signing out")
	if err := a.Sessions.SignOut(ctx); err != nil {
		a.logger.Error("failed to sign out idle session", "error", err)
	}
}
