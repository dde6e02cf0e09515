package models

// Todo is a to-do list entry.
type Todo struct {
	Meta

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// DueDate is optional; nil means no deadline.
	DueDate *string `json:"due_date"`

	Completed bool `json:"completed"`
}

// Normalize applies creation-time defaults: a new todo is never completed.
func (t *Todo) Normalize() {
	t.Completed = false
}

// TodoPatch is a partial update for a Todo.
type TodoPatch struct {
	Title       *string
	Description *string
	DueDate     **string
	Completed   *bool
}

// Apply merges the patch into the todo. DueDate is doubly optional: a nil
// outer pointer leaves it alone, a non-nil outer pointer to nil clears it.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
