// Package server exposes the local auth HTTP surface: JSON
// signup/signin/session endpoints backed by SQLite, the migration
// trigger, and the example read endpoints.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evtrack/homeledger/internal/auth"
	"github.com/evtrack/homeledger/internal/migrate"
	"github.com/evtrack/homeledger/internal/sqlstore"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	store         *sqlstore.Store
	jwt           *auth.JWTManager
	migrationsDir string
	logger        *slog.Logger
}

// New creates a Server over the given store and token manager.
func New(store *sqlstore.Store, jwt *auth.JWTManager, migrationsDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:         store,
		jwt:           jwt,
		migrationsDir: migrationsDir,
		logger:        logger,
	}
}

// Handler returns the fully wired route tree with logging, CORS and
// metrics middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/signin", s.handleSignin)
	mux.HandleFunc("POST /auth/signout", s.handleSignout)
	mux.HandleFunc("POST /auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("GET /auth/session", s.handleSession)
	mux.HandleFunc("POST /migrate", s.handleMigrate)
	mux.HandleFunc("GET /bills", s.handleBills)
	mux.HandleFunc("GET /expenses", s.handleExpenses)
	mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(corsMiddleware(metricsMiddleware(mux)))
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	ctx := r.Context()
	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("signup lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "user_exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("signup hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := s.store.CreateUser(ctx, req.Email, hash)
	if err != nil {
		s.logger.Error("signup insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := strconv.FormatInt(user.ID, 10)
	token, err := s.jwt.Generate(id, user.Email)
	if err != nil {
		s.logger.Error("signup token failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("user signed up", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":    map[string]any{"id": id, "email": user.Email},
		"session": map[string]any{"access_token": token},
	})
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.logger.Error("signin lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusBadRequest, "invalid_credentials")
		return
	}

	id := strconv.FormatInt(user.ID, 10)
	token, err := s.jwt.Generate(id, user.Email)
	if err != nil {
		s.logger.Error("signin token failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("user signed in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":    map[string]any{"id": id, "email": user.Email},
		"session": map[string]any{"access_token": token},
	})
}

// handleSignout exists for client parity; with stateless tokens the
// client just drops its copy.
func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleResetPassword acknowledges and logs the request. No email is
// sent in the local setup.
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		RedirectTo string `json:"redirectTo"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.logger.Info("password reset requested", "email", req.Email, "redirect_to", req.RedirectTo)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleSession decodes the bearer token from the Authorization header.
// It never errors: any verification failure yields {"session": null}.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		writeJSON(w, http.StatusOK, map[string]any{"session": nil})
		return
	}

	token := strings.TrimPrefix(header, "Bearer ")
	claims, err := s.jwt.Validate(token)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"session": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": map[string]any{
			"user": map[string]any{"id": claims.UserID, "email": claims.Email},
		},
	})
}

// handleMigrate re-runs the schema bootstrap and replays the external
// migration files. Safe to call multiple times.
func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	if err := migrate.EnsureSchema(s.store.DB()); err != nil {
		s.logger.Error("migration error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := migrate.Apply(s.store.DB(), s.migrationsDir)
	if err != nil {
		s.logger.Error("migration error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var applied, skipped, failed int
	for _, res := range results {
		switch res.Outcome {
		case migrate.Applied:
			applied++
		case migrate.Skipped:
			skipped++
		case migrate.Failed:
			failed++
		}
	}
	s.logger.Info("migrations applied",
		"applied", applied, "skipped", skipped, "failed", failed)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.DumpBills(r.Context())
	if err != nil {
		s.logger.Error("bills dump failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.DumpExpenses(r.Context())
	if err != nil {
		s.logger.Error("expenses dump failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
