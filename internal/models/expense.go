package models

// Expense is a single household expense. Expenses are immutable once
// created; the only mutation is deletion.
type Expense struct {
	Meta

	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"payment_method"`
}

// Normalize applies creation-time defaults. Expenses have none.
func (e *Expense) Normalize() {}

// ExpensePatch exists so expenses fit the generic store contract, but an
// expense never changes after creation, so no fields are patchable.
type ExpensePatch struct{}

// Apply is a no-op; see ExpensePatch.
func (ExpensePatch) Apply(*Expense) {}
