package transfer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/evtrack/homeledger/internal/models"
	"github.com/evtrack/homeledger/internal/store"
)

func seedUser(t *testing.T, backend store.Backend, userID string) {
	t.Helper()
	s := store.New(backend, "")
	if _, err := s.Bills.Create(userID, models.Bill{BillType: "Elektrik", Amount: 150, DueDate: "2024-01-15"}); err != nil {
		t.Fatalf("Create bill failed: %v", err)
	}
	if _, err := s.Bills.Create(userID, models.Bill{BillType: "Su", Amount: 80, DueDate: "2024-02-01"}); err != nil {
		t.Fatalf("Create bill failed: %v", err)
	}
	if _, err := s.Todos.Create(userID, models.Todo{Title: "change filter"}); err != nil {
		t.Fatalf("Create todo failed: %v", err)
	}
	if _, err := s.Incomes.Create(userID, models.Income{Category: "Maaş", Amount: 1000}); err != nil {
		t.Fatalf("Create income failed: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := store.NewMemoryBackend()
	seedUser(t, src, "u1")

	doc, err := Export(src, store.DefaultPrefix, "u1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if doc.Version != Version {
		t.Errorf("Expected version %q, got %q", Version, doc.Version)
	}
	if doc.ExportDate == "" || doc.UserID != "u1" {
		t.Errorf("Export metadata wrong: %+v", doc)
	}
	if doc.Expenses != nil {
		t.Error("Expected absent expenses slot to stay nil")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	dst := store.NewMemoryBackend()
	report, err := Import(dst, store.DefaultPrefix, "u1", raw)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Counts[store.EntityBills] != 2 || report.Counts[store.EntityTodos] != 1 {
		t.Errorf("Unexpected counts: %+v", report.Counts)
	}

	// Per-entity sequences must reproduce bit-identically.
	for _, entity := range []string{store.EntityBills, store.EntityTodos, store.EntityShopping} {
		key := store.RecordKey(store.DefaultPrefix, entity, "u1")
		want, wantOK, _ := src.Get(key)
		got, gotOK, _ := dst.Get(key)
		if wantOK != gotOK || want != got {
			t.Errorf("Slot %s differs after round trip:\nwant %q\ngot  %q", entity, want, got)
		}
	}
}

func TestImportRejectsInvalidFormat(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedUser(t, backend, "u1")
	key := store.RecordKey(store.DefaultPrefix, store.EntityBills, "u1")
	before, _, _ := backend.Get(key)

	t.Run("missing version tag", func(t *testing.T) {
		_, err := Import(backend, store.DefaultPrefix, "u1", []byte(`{"bills":"[]"}`))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("Expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("unparseable document", func(t *testing.T) {
		_, err := Import(backend, store.DefaultPrefix, "u1", []byte(`not json`))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("Expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("corrupt entity payload", func(t *testing.T) {
		_, err := Import(backend, store.DefaultPrefix, "u1", []byte(`{"version":"1.0","bills":"not an array"}`))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("Expected ErrInvalidFormat, got %v", err)
		}
	})

	after, _, _ := backend.Get(key)
	if before != after {
		t.Error("Failed import must leave existing data untouched")
	}
}

func TestImportReplacesOnlyPresentSlots(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedUser(t, backend, "u1")

	doc := []byte(`{"version":"1.0","exportDate":"2024-01-01T00:00:00Z","userId":"u1","bills":"[]"}`)
	report, err := Import(backend, store.DefaultPrefix, "u1", doc)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Counts[store.EntityBills] != 0 {
		t.Errorf("Expected 0 imported bills, got %d", report.Counts[store.EntityBills])
	}

	// Bills slot is fully replaced, not merged.
	raw, _, _ := backend.Get(store.RecordKey(store.DefaultPrefix, store.EntityBills, "u1"))
	if raw != "[]" {
		t.Errorf("Expected bills slot replaced with empty array, got %q", raw)
	}

	// Todos were absent from the document and must be untouched.
	todos, err := store.New(backend, "").Todos.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(todos) != 1 {
		t.Errorf("Expected todos untouched, got %d records", len(todos))
	}
}

func TestStatsAndClear(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedUser(t, backend, "u1")

	stats, err := Stats(backend, store.DefaultPrefix, "u1")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	// Incomes are not part of the transfer format.
	if stats[store.EntityBills] != 2 || stats[store.EntityTodos] != 1 || stats["total"] != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	if err := Clear(backend, store.DefaultPrefix, "u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	stats, err = Stats(backend, store.DefaultPrefix, "u1")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats["total"] != 0 {
		t.Errorf("Expected empty stats after clear, got %+v", stats)
	}

	// Incomes live outside the transfer slots and survive Clear.
	incomes, err := store.New(backend, "").Incomes.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(incomes) != 1 {
		t.Errorf("Expected incomes to survive clear, got %d", len(incomes))
	}
}
