package store

import "github.com/evtrack/homeledger/internal/models"

// Store bundles one record store per entity type plus the global user
// and session slots, all over a single backend and key prefix.
type Store struct {
	Bills    *Records[models.Bill, *models.Bill]
	Expenses *Records[models.Expense, *models.Expense]
	Incomes  *Records[models.Income, *models.Income]
	Todos    *Records[models.Todo, *models.Todo]
	Shopping *Records[models.ShoppingItem, *models.ShoppingItem]
	Users    *UserStore
	Sessions *SessionStore
}

// New creates a Store over the given backend using the given key prefix
// (DefaultPrefix when empty).
func New(backend Backend, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		Bills:    NewRecords[models.Bill](backend, prefix, EntityBills),
		Expenses: NewRecords[models.Expense](backend, prefix, EntityExpenses),
		Incomes:  NewRecords[models.Income](backend, prefix, EntityIncomes),
		Todos:    NewRecords[models.Todo](backend, prefix, EntityTodos),
		Shopping: NewRecords[models.ShoppingItem](backend, prefix, EntityShopping),
		Users:    NewUserStore(backend, prefix),
		Sessions: NewSessionStore(backend, prefix),
	}
}
