// Package transfer implements the export/import file format: all of one
// user's records serialized into a single versioned JSON document, used
// for manual offline moves between devices.
//
// The document embeds each entity sequence as the raw stored array
// string, not as parsed JSON, so a round trip through export and import
// reproduces the stored values byte for byte. Import is a full replace
// per entity slot: a slot present in the document overwrites the store,
// a slot absent from the document is left untouched.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evtrack/homeledger/internal/store"
)

// Version is the current transfer format version tag.
const Version = "1.0"

// ErrInvalidFormat is returned for documents that are not valid exports
// (unparseable, missing version tag, or corrupt entity payloads).
var ErrInvalidFormat = errors.New("invalid backup file format")

// transferEntities are the entity types included in the format, in the
// order they appear in the document. Incomes are not part of the format.
var transferEntities = []string{
	store.EntityBills,
	store.EntityExpenses,
	store.EntityTodos,
	store.EntityShopping,
}

// Document is the on-disk export format. Each entity field holds the
// raw serialized array string, or null when the user had no such slot.
type Document struct {
	Version    string  `json:"version"`
	ExportDate string  `json:"exportDate"`
	UserID     string  `json:"userId"`
	Bills      *string `json:"bills"`
	Expenses   *string `json:"expenses"`
	Todos      *string `json:"todos"`
	Shopping   *string `json:"shopping"`
}

func (d *Document) slot(entity string) **string {
	switch entity {
	case store.EntityBills:
		return &d.Bills
	case store.EntityExpenses:
		return &d.Expenses
	case store.EntityTodos:
		return &d.Todos
	case store.EntityShopping:
		return &d.Shopping
	}
	return nil
}

// Report summarizes an import: how many records each entity slot
// carried, and when the document was exported.
type Report struct {
	ExportDate string
	Counts     map[string]int
}

// Export reads every entity slot of the given user and wraps them into a
// versioned document.
func Export(backend store.Backend, prefix, userID string) (*Document, error) {
	doc := &Document{
		Version:    Version,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		UserID:     userID,
	}
	for _, entity := range transferEntities {
		raw, ok, err := backend.Get(store.RecordKey(prefix, entity, userID))
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", entity, err)
		}
		if ok {
			*doc.slot(entity) = &raw
		}
	}
	return doc, nil
}

// Import parses an exported document and overwrites each entity slot
// present in it. The whole document is validated before the first write,
// so an invalid file leaves existing data untouched. Returns per-entity
// record counts.
func Import(backend store.Backend, prefix, userID string, data []byte) (*Report, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("%w: missing version tag", ErrInvalidFormat)
	}

	counts := make(map[string]int)
	for _, entity := range transferEntities {
		raw := *doc.slot(entity)
		if raw == nil {
			counts[entity] = 0
			continue
		}
		n, err := countRecords(*raw)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt %s payload: %v", ErrInvalidFormat, entity, err)
		}
		counts[entity] = n
	}

	for _, entity := range transferEntities {
		raw := *doc.slot(entity)
		if raw == nil {
			continue
		}
		if err := backend.Set(store.RecordKey(prefix, entity, userID), *raw); err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", entity, err)
		}
	}

	return &Report{ExportDate: doc.ExportDate, Counts: counts}, nil
}

// Stats counts the records currently stored per entity slot, plus the
// grand total.
func Stats(backend store.Backend, prefix, userID string) (map[string]int, error) {
	stats := make(map[string]int)
	total := 0
	for _, entity := range transferEntities {
		raw, ok, err := backend.Get(store.RecordKey(prefix, entity, userID))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entity, err)
		}
		n := 0
		if ok {
			if n, err = countRecords(raw); err != nil {
				return nil, fmt.Errorf("failed to count %s: %w", entity, err)
			}
		}
		stats[entity] = n
		total += n
	}
	stats["total"] = total
	return stats, nil
}

// Clear removes every entity slot of the given user.
func Clear(backend store.Backend, prefix, userID string) error {
	for _, entity := range transferEntities {
		if err := backend.Delete(store.RecordKey(prefix, entity, userID)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", entity, err)
		}
	}
	return nil
}

func countRecords(raw string) (int, error) {
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return 0, err
	}
	return len(list), nil
}
