package models

import "time"

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	// BillPending means the bill has not been paid yet.
	BillPending BillStatus = "pending"
	// BillCompleted means the bill has been paid.
	BillCompleted BillStatus = "completed"
)

// Bill represents a recurring household bill (electricity, water, rent...).
type Bill struct {
	Meta

	// BillType is the kind of bill (e.g. "Elektrik", "Su").
	BillType string `json:"bill_type"`

	// Amount is the billed amount.
	Amount float64 `json:"amount"`

	// DueDate is the date the bill must be paid by (ISO date string).
	DueDate string `json:"due_date"`

	// PaymentDate is the timestamp the bill was paid, nil while pending.
	PaymentDate *string `json:"payment_date"`

	// Notes is an optional free-form note.
	Notes string `json:"notes,omitempty"`

	// Status is either BillPending or BillCompleted.
	Status BillStatus `json:"status"`
}

// Normalize applies creation-time defaults.
func (b *Bill) Normalize() {
	if b.Status == "" {
		b.Status = BillPending
	}
}

// BillPatch is a partial update for a Bill. Nil fields are left unchanged.
//
// Patching Status drives PaymentDate: transitioning to BillCompleted stamps
// the payment time, transitioning back to BillPending clears it.
type BillPatch struct {
	BillType *string
	Amount   *float64
	DueDate  *string
	Notes    *string
	Status   *BillStatus
}

// Apply merges the patch into the bill.
func (p BillPatch) Apply(b *Bill) {
	if p.BillType != nil {
		b.BillType = *p.BillType
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.DueDate != nil {
		b.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if p.Status != nil && *p.Status != b.Status {
		b.Status = *p.Status
		if b.Status == BillCompleted {
			now := time.Now().UTC().Format(time.RFC3339)
			b.PaymentDate = &now
		} else {
			b.PaymentDate = nil
		}
	}
}
