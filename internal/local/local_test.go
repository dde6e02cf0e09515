package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evtrack/homeledger/internal/config"
	"github.com/evtrack/homeledger/internal/models"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DataPath = filepath.Join(t.TempDir(), "records.json")
	cfg.Storage.KeyPrefix = "household"
	cfg.Auth.IdleTimeout = 30 * time.Minute
	return cfg
}

func TestApp(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	app, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := app.Sessions.SignUp(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	sess, err := app.Sessions.SignIn(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	if _, err := app.Records.Bills.Create(sess.UserID, models.Bill{BillType: "Kira", Amount: 1200}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("Data file lives at the configured path", func(t *testing.T) {
		if _, err := os.Stat(cfg.Storage.DataPath); err != nil {
			t.Fatalf("Expected data file at %s: %v", cfg.Storage.DataPath, err)
		}
	})

	t.Run("Keys use the configured prefix", func(t *testing.T) {
		raw, err := os.ReadFile(cfg.Storage.DataPath)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !strings.Contains(string(raw), `"household_users"`) {
			t.Errorf("Expected household_users key in data file, got %s", raw)
		}
		if strings.Contains(string(raw), "ev_yonetimi_") {
			t.Errorf("Default prefix must not appear under a custom prefix, got %s", raw)
		}
	})

	t.Run("Session survives reopening", func(t *testing.T) {
		reopened, err := Open(cfg, nil)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		sess, err := reopened.Sessions.Session(ctx)
		if err != nil {
			t.Fatalf("Session failed: %v", err)
		}
		if sess == nil || sess.Email != "a@x.com" {
			t.Fatalf("Expected persisted session for a@x.com, got %+v", sess)
		}
	})

	t.Run("Idle timeout signs out", func(t *testing.T) {
		app.signOutIdle(ctx)
		sess, err := app.Sessions.Session(ctx)
		if err != nil {
			t.Fatalf("Session failed: %v", err)
		}
		if sess != nil {
			t.Errorf("Expected no session after idle sign-out, got %+v", sess)
		}
	})

	t.Run("Watcher starts and stops", func(t *testing.T) {
		w := app.StartIdleWatcher(ctx)
		w.Touch()
		w.Stop()
	})
}
