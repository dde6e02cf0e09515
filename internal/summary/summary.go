// Package summary computes the dashboard roll-ups: money totals per
// entity type and category, completion counts, and the net balance.
// Money sums go through decimal arithmetic so that totals like
// 0.1 + 0.2 come out exact.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/evtrack/homeledger/internal/models"
)

// BillStats breaks bill amounts down by payment status.
type BillStats struct {
	Total   decimal.Decimal
	Paid    decimal.Decimal
	Pending decimal.Decimal
}

// MoneyStats totals a money-bearing entity overall and per category.
type MoneyStats struct {
	Total      decimal.Decimal
	Categories map[string]decimal.Decimal
}

// CountStats counts completable items.
type CountStats struct {
	Total     int
	Completed int
	Pending   int
}

// Overview is the full dashboard snapshot for one user.
type Overview struct {
	Bills    BillStats
	Expenses MoneyStats
	Incomes  MoneyStats
	Todos    CountStats
	Shopping CountStats

	// Net is total income minus total expenses.
	Net decimal.Decimal
}

// Build computes an Overview from the user's record slices.
func Build(
	bills []models.Bill,
	expenses []models.Expense,
	incomes []models.Income,
	todos []models.Todo,
	shopping []models.ShoppingItem,
) Overview {
	var o Overview

	for _, b := range bills {
		amount := decimal.NewFromFloat(b.Amount)
		o.Bills.Total = o.Bills.Total.Add(amount)
		if b.Status == models.BillCompleted {
			o.Bills.Paid = o.Bills.Paid.Add(amount)
		} else {
			o.Bills.Pending = o.Bills.Pending.Add(amount)
		}
	}

	o.Expenses.Categories = make(map[string]decimal.Decimal)
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		o.Expenses.Total = o.Expenses.Total.Add(amount)
		o.Expenses.Categories[e.Category] = o.Expenses.Categories[e.Category].Add(amount)
	}

	o.Incomes.Categories = make(map[string]decimal.Decimal)
	for _, in := range incomes {
		amount := decimal.NewFromFloat(in.Amount)
		o.Incomes.Total = o.Incomes.Total.Add(amount)
		o.Incomes.Categories[in.Category] = o.Incomes.Categories[in.Category].Add(amount)
	}

	for _, t := range todos {
		o.Todos.Total++
		if t.Completed {
			o.Todos.Completed++
		} else {
			o.Todos.Pending++
		}
	}

	for _, s := range shopping {
		o.Shopping.Total++
		if s.Completed {
			o.Shopping.Completed++
		} else {
			o.Shopping.Pending++
		}
	}

	o.Net = o.Incomes.Total.Sub(o.Expenses.Total)
	return o
}
