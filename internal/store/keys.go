package store

import "fmt"

// DefaultPrefix namespaces every key written by this application.
const DefaultPrefix = "ev_yonetimi"

// Entity type names used as key segments. These are part of the on-disk
// format and of the export file format; do not rename.
const (
	EntityBills    = "bills"
	EntityExpenses = "expenses"
	EntityIncomes  = "incomes"
	EntityTodos    = "todos"
	EntityShopping = "shopping"
)

// RecordKey is the composite key holding one user's records of one
// entity type: {prefix}_{entityType}_{userId}.
func RecordKey(prefix, entity, userID string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, entity, userID)
}

// UsersKey holds the global registered-user list.
func UsersKey(prefix string) string {
	return prefix + "_users"
}

// SessionKey holds the current session, if any.
func SessionKey(prefix string) string {
	return prefix + "_session"
}
