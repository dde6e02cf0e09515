package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evtrack/homeledger/internal/models"
)

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	t.Run("data survives reopen", func(t *testing.T) {
		backend, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		s := New(backend, "")

		created, err := s.Bills.Create("u1", models.Bill{BillType: "Elektrik", Amount: 150, DueDate: "2024-01-15"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		reopened, err := OpenFile(path)
		if err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		bills, err := New(reopened, "").Bills.List("u1")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(bills) != 1 || bills[0].ID != created.ID {
			t.Errorf("Expected reopened store to hold the created bill, got %+v", bills)
		}
	})

	t.Run("delete removes the key", func(t *testing.T) {
		backend, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		key := RecordKey(DefaultPrefix, EntityBills, "u1")
		if err := backend.Delete(key); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := backend.Get(key); ok {
			t.Error("Expected key to be gone after delete")
		}
	})

	t.Run("user store enforces email uniqueness", func(t *testing.T) {
		users := NewUserStore(NewMemoryBackend(), DefaultPrefix)
		ctx := context.Background()

		if err := users.CreateUser(ctx, &models.User{Email: "a@x.com", PasswordHash: "h"}); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		err := users.CreateUser(ctx, &models.User{Email: "a@x.com", PasswordHash: "h2"})
		if !errors.Is(err, ErrEmailExists) {
			t.Fatalf("Expected ErrEmailExists, got %v", err)
		}

		u, err := users.GetUserByEmail(ctx, "a@x.com")
		if err != nil || u == nil {
			t.Fatalf("GetUserByEmail failed: %v, %v", u, err)
		}
		if u.ID == "" || u.CreatedAt == "" {
			t.Errorf("Expected id and createdAt assigned, got %+v", u)
		}
	})
}
