package models

// ShoppingItem is an entry on the shopping list.
type ShoppingItem struct {
	Meta

	ItemName string `json:"item_name"`

	// Quantity is always at least 1.
	Quantity int `json:"quantity"`

	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// Normalize applies creation-time defaults: not completed, quantity >= 1.
func (s *ShoppingItem) Normalize() {
	s.Completed = false
	if s.Quantity < 1 {
		s.Quantity = 1
	}
}

// ShoppingItemPatch is a partial update for a ShoppingItem.
type ShoppingItemPatch struct {
	ItemName  *string
	Quantity  *int
	Category  *string
	Completed *bool
}

// Apply merges the patch into the item, keeping the quantity floor.
func (p ShoppingItemPatch) Apply(s *ShoppingItem) {
	if p.ItemName != nil {
		s.ItemName = *p.ItemName
	}
	if p.Quantity != nil {
		s.Quantity = *p.Quantity
		if s.Quantity < 1 {
			s.Quantity = 1
		}
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
}
