package summary

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/evtrack/homeledger/internal/models"
)

func TestBuild(t *testing.T) {
	paid := "2024-01-20T10:00:00Z"
	bills := []models.Bill{
		{BillType: "Elektrik", Amount: 150, Status: models.BillCompleted, PaymentDate: &paid},
		{BillType: "Su", Amount: 80, Status: models.BillPending},
		{BillType: "İnternet", Amount: 70, Status: models.BillPending},
	}
	expenses := []models.Expense{
		{Category: "Market", Amount: 0.1},
		{Category: "Market", Amount: 0.2},
		{Category: "Ulaşım", Amount: 50},
	}
	incomes := []models.Income{
		{Category: "Maaş", Amount: 1000},
		{Category: "Kira", Amount: 250.5},
	}
	todos := []models.Todo{
		{Title: "a", Completed: true},
		{Title: "b"},
		{Title: "c"},
	}
	shopping := []models.ShoppingItem{
		{ItemName: "Milk", Completed: true},
		{ItemName: "Bread"},
	}

	o := Build(bills, expenses, incomes, todos, shopping)

	t.Run("bill totals by status", func(t *testing.T) {
		if !o.Bills.Total.Equal(decimal.NewFromInt(300)) {
			t.Errorf("Bills total: got %s, want 300", o.Bills.Total)
		}
		if !o.Bills.Paid.Equal(decimal.NewFromInt(150)) {
			t.Errorf("Bills paid: got %s, want 150", o.Bills.Paid)
		}
		if !o.Bills.Pending.Equal(decimal.NewFromInt(150)) {
			t.Errorf("Bills pending: got %s, want 150", o.Bills.Pending)
		}
	})

	t.Run("money sums are exact", func(t *testing.T) {
		market := o.Expenses.Categories["Market"]
		if !market.Equal(decimal.NewFromFloat(0.3)) {
			t.Errorf("Market category: got %s, want 0.3", market)
		}
		if !o.Expenses.Total.Equal(decimal.NewFromFloat(50.3)) {
			t.Errorf("Expenses total: got %s, want 50.3", o.Expenses.Total)
		}
	})

	t.Run("income categories and net balance", func(t *testing.T) {
		if !o.Incomes.Total.Equal(decimal.NewFromFloat(1250.5)) {
			t.Errorf("Incomes total: got %s, want 1250.5", o.Incomes.Total)
		}
		if len(o.Incomes.Categories) != 2 {
			t.Errorf("Expected 2 income categories, got %d", len(o.Incomes.Categories))
		}
		if !o.Net.Equal(decimal.NewFromFloat(1200.2)) {
			t.Errorf("Net: got %s, want 1200.2", o.Net)
		}
	})

	t.Run("completion counts", func(t *testing.T) {
		if o.Todos.Total != 3 || o.Todos.Completed != 1 || o.Todos.Pending != 2 {
			t.Errorf("Todo counts wrong: %+v", o.Todos)
		}
		if o.Shopping.Total != 2 || o.Shopping.Completed != 1 || o.Shopping.Pending != 1 {
			t.Errorf("Shopping counts wrong: %+v", o.Shopping)
		}
	})
}

func TestBuildEmpty(t *testing.T) {
	o := Build(nil, nil, nil, nil, nil)
	if !o.Net.IsZero() || !o.Bills.Total.IsZero() {
		t.Errorf("Expected zero totals, got %+v", o)
	}
	if o.Todos.Total != 0 || o.Shopping.Total != 0 {
		t.Errorf("Expected zero counts, got %+v", o)
	}
}
