package models

// Meta holds the fields common to every stored record.
// Timestamps are RFC 3339 strings so that records survive an
// export/import round trip byte for byte.
type Meta struct {
	// ID is the unique identifier assigned at creation time (UUID format).
	ID string `json:"id"`

	// CreatedAt is set once, when the record is created.
	CreatedAt string `json:"createdAt"`

	// UpdatedAt is stamped on every successful patch. Empty until the
	// record is updated for the first time.
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// RecordMeta exposes the embedded metadata to the generic record store.
func (m *Meta) RecordMeta() *Meta { return m }
