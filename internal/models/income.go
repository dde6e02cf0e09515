package models

// Income is a single income entry (salary, rent received...). Like
// Expense, it is immutable once created.
type Income struct {
	Meta

	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"payment_method"`
}

// Normalize applies creation-time defaults. Incomes have none.
func (i *Income) Normalize() {}

// IncomePatch exists for the generic store contract; incomes are not
// patchable.
type IncomePatch struct{}

// Apply is a no-op; see IncomePatch.
func (IncomePatch) Apply(*Income) {}
