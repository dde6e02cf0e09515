package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evtrack/homeledger/internal/models"
)

// Patch is a typed partial update for a record of type T. Applying a
// patch mutates only the fields the patch carries.
type Patch[T any] interface {
	Apply(*T)
}

// Record constrains the pointer side of a stored record type: it exposes
// the embedded metadata and its creation-time defaults.
type Record[T any] interface {
	*T
	RecordMeta() *models.Meta
	Normalize()
}

// Records is the generic per-entity record store. One Records value
// manages all users' sequences of a single entity type, each sequence
// stored as one JSON array under its composite key.
type Records[T any, PT Record[T]] struct {
	backend Backend
	prefix  string
	entity  string

	now   func() time.Time
	newID func() string
}

// NewRecords creates a record store for one entity type over the given
// backend.
func NewRecords[T any, PT Record[T]](backend Backend, prefix, entity string) *Records[T, PT] {
	return &Records[T, PT]{
		backend: backend,
		prefix:  prefix,
		entity:  entity,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

func (r *Records[T, PT]) key(userID string) string {
	return RecordKey(r.prefix, r.entity, userID)
}

// List returns the user's records in insertion order. A missing storage
// key yields an empty slice, never an error.
func (r *Records[T, PT]) List(userID string) ([]T, error) {
	return r.load(userID)
}

// Create assigns a fresh id and creation timestamp, applies the entity's
// creation defaults, appends the record to the user's sequence and
// persists it. The stored record is returned.
func (r *Records[T, PT]) Create(userID string, rec T) (T, error) {
	p := PT(&rec)
	p.Normalize()

	meta := p.RecordMeta()
	meta.ID = r.newID()
	meta.CreatedAt = r.now().UTC().Format(time.RFC3339)
	meta.UpdatedAt = ""

	list, err := r.load(userID)
	if err != nil {
		return rec, err
	}
	list = append(list, rec)
	if err := r.save(userID, list); err != nil {
		return rec, err
	}
	return rec, nil
}

// Update applies the patch to the record with the given id, stamps the
// update timestamp and persists the whole sequence. Returns ErrNotFound
// if no record has that id; the stored sequence is left unchanged.
func (r *Records[T, PT]) Update(userID, id string, patch Patch[T]) (T, error) {
	var zero T

	list, err := r.load(userID)
	if err != nil {
		return zero, err
	}

	for i := range list {
		p := PT(&list[i])
		if p.RecordMeta().ID != id {
			continue
		}
		patch.Apply(&list[i])
		p.RecordMeta().UpdatedAt = r.now().UTC().Format(time.RFC3339)
		if err := r.save(userID, list); err != nil {
			return zero, err
		}
		return list[i], nil
	}

	return zero, fmt.Errorf("%s %s: %w", r.entity, id, ErrNotFound)
}

// Remove filters the id out of the sequence and persists the remainder.
// Removing an id that is not present is a no-op success.
func (r *Records[T, PT]) Remove(userID, id string) error {
	list, err := r.load(userID)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(list))
	for i := range list {
		if PT(&list[i]).RecordMeta().ID == id {
			continue
		}
		kept = append(kept, list[i])
	}
	return r.save(userID, kept)
}

func (r *Records[T, PT]) load(userID string) ([]T, error) {
	raw, ok, err := r.backend.Get(r.key(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.entity, err)
	}
	if !ok {
		return []T{}, nil
	}

	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.entity, err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func (r *Records[T, PT]) save(userID string, list []T) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.entity, err)
	}
	if err := r.backend.Set(r.key(userID), string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.entity, err)
	}
	return nil
}
