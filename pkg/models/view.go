package models

import (
	"github.com/envelope-zero/wallet/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Status is the state of the budget for a month.
type Status string

const (
	StatusUninitialized Status = "uninitialized" // no budget for the month
	StatusCreated       Status = "created"       // budget exists, no limit set and nothing spent
	StatusUnderspent    Status = "underspent"    // spent is less than the limit
	StatusFullySpent    Status = "fullySpent"    // spent equals the limit
	StatusOverspent     Status = "overspent"     // spent is more than the limit
)

// Slice is one part of the spending breakdown chart.
type Slice struct {
	Label string          `json:"label" example:"Food"`
	Value decimal.Decimal `json:"value" example:"40"`
}

// Summary contains all values derived for the budget of a month.
type Summary struct {
	BudgetEntry
	Remaining    decimal.Decimal `json:"remaining" example:"60"`
	Status       Status          `json:"status" example:"underspent"`
	OverBudget   bool            `json:"overBudget" example:"false"`
	FullySpent   bool            `json:"fullySpent" example:"false"`
	Transactions int             `json:"transactions" example:"1"`
}

// CategoryBreakdown sums up the transactions of a month per category.
//
// The result is empty if there are no transactions for the month.
func CategoryBreakdown(log *TransactionLog, month types.Month) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for t := range log.ListForMonth(month) {
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	return totals
}

// BreakdownSeries returns the category breakdown as chart slices sorted
// by label.
func BreakdownSeries(log *TransactionLog, month types.Month) []Slice {
	totals := CategoryBreakdown(log, month)

	series := make([]Slice, 0, len(totals))
	for label, value := range totals {
		series = append(series, Slice{Label: label, Value: value})
	}

	slices.SortFunc(series, func(a, b Slice) int {
		switch {
		case a.Label < b.Label:
			return -1
		case a.Label > b.Label:
			return 1
		}
		return 0
	})

	return series
}

// IsOverBudget reports whether more than the limit has been spent.
func IsOverBudget(budgets *BudgetStore, month types.Month) bool {
	entry, ok := budgets.Get(month)
	return ok && entry.Spent.GreaterThan(entry.Limit)
}

// IsFullySpent reports whether exactly the limit has been spent.
func IsFullySpent(budgets *BudgetStore, month types.Month) bool {
	entry, ok := budgets.Get(month)
	return ok && entry.Spent.Equal(entry.Limit)
}

// MonthStatus returns the state of the budget for a month.
func MonthStatus(budgets *BudgetStore, month types.Month) Status {
	entry, ok := budgets.Get(month)
	if !ok {
		return StatusUninitialized
	}

	switch {
	case entry.Limit.IsZero() && entry.Spent.IsZero():
		return StatusCreated
	case entry.Spent.GreaterThan(entry.Limit):
		return StatusOverspent
	case entry.Spent.Equal(entry.Limit):
		return StatusFullySpent
	default:
		return StatusUnderspent
	}
}

// Summarize computes the summary for a month.
func Summarize(budgets *BudgetStore, log *TransactionLog, month types.Month) (Summary, error) {
	entry, ok := budgets.Get(month)
	if !ok {
		return Summary{}, monthNotFound(month)
	}

	count := 0
	for range log.ListForMonth(month) {
		count++
	}

	return Summary{
		BudgetEntry:  entry,
		Remaining:    entry.Remaining(),
		Status:       MonthStatus(budgets, month),
		OverBudget:   IsOverBudget(budgets, month),
		FullySpent:   IsFullySpent(budgets, month),
		Transactions: count,
	}, nil
}
