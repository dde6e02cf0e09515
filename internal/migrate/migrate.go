// Package migrate brings a fresh SQLite database to a usable state: it
// unconditionally creates the core tables, then best-effort replays any
// externally authored SQL migration files.
//
// The migration files target a different SQL dialect (hosted Postgres),
// so each script goes through a conservative textual sanitation pass and
// is then executed statement by statement; a failing statement is
// recorded and skipped rather than aborting the script. Only the core
// table-creation statements are required to succeed, and those are
// guaranteed by EnsureSchema regardless of what the files contain.
package migrate

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// schema creates the core tables. Every statement is guarded with IF NOT
// EXISTS, so running it repeatedly neither errors nor duplicates schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP,
    user_id TEXT NOT NULL,
    bill_type TEXT NOT NULL,
    amount REAL NOT NULL,
    due_date TEXT NOT NULL,
    payment_date TEXT,
    notes TEXT,
    status TEXT NOT NULL DEFAULT 'pending'
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP,
    user_id TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    date TEXT NOT NULL,
    payment_method TEXT NOT NULL
);
`

// EnsureSchema creates the core tables. Idempotent.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create core tables: %w", err)
	}
	return nil
}

// Outcome classifies what happened to one statement of a migration file.
type Outcome string

const (
	// Applied means the statement executed successfully.
	Applied Outcome = "applied"
	// Skipped means the sanitizer removed the statement before
	// execution because it targets an incompatible dialect.
	Skipped Outcome = "skipped"
	// Failed means the statement was executed and errored. The error is
	// recorded and the script continues.
	Failed Outcome = "failed"
)

// StatementResult reports the outcome of one statement.
type StatementResult struct {
	File      string
	Statement string
	Outcome   Outcome
	Reason    string // set for Skipped
	Err       error  // set for Failed
}

// Apply replays every .sql file under dir in lexical filename order.
// A missing directory is non-fatal: it warns and returns no results.
// Per-statement failures never abort the script; the full outcome list
// is returned so callers can inspect what happened.
func Apply(db *sql.DB, dir string) ([]StatementResult, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		slog.Warn("no migrations dir found", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var results []StatementResult
	for _, name := range files {
		script, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return results, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		results = append(results, applyScript(db, name, string(script))...)
	}
	return results, nil
}

// applyScript sanitizes and executes one migration script.
func applyScript(db *sql.DB, name, script string) []StatementResult {
	cleaned, skipped := sanitize(script)

	var results []StatementResult
	for _, s := range skipped {
		results = append(results, StatementResult{
			File:      name,
			Statement: s.statement,
			Outcome:   Skipped,
			Reason:    s.reason,
		})
	}

	for _, stmt := range splitStatements(cleaned) {
		if _, err := db.Exec(stmt + ";"); err != nil {
			slog.Warn("migration statement failed (continuing)",
				"file", name, "error", err)
			results = append(results, StatementResult{
				File:      name,
				Statement: stmt,
				Outcome:   Failed,
				Err:       err,
			})
			continue
		}
		results = append(results, StatementResult{
			File:      name,
			Statement: stmt,
			Outcome:   Applied,
		})
	}
	return results
}

// splitStatements breaks a sanitized script on statement-terminating
// semicolons, dropping empty fragments.
func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
