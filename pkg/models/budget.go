package models

import (
	"fmt"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetEntry is the budget for a single month.
//
// Spent is the sum of all transactions for the month. It is maintained by
// the TransactionLog and cannot be set directly.
type BudgetEntry struct {
	Month types.Month     `json:"month" example:"2024-05"`
	Limit decimal.Decimal `json:"limit" example:"100"`
	Spent decimal.Decimal `json:"spent" example:"40"`
}

// Remaining returns the limit minus the amount spent. It is negative
// when the month is over budget.
func (b BudgetEntry) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}

// BudgetStore maps months to their budget.
type BudgetStore struct {
	entries map[types.Month]*BudgetEntry
}

func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		entries: make(map[types.Month]*BudgetEntry),
	}
}

// AddMonth creates the budget for a month with a limit of zero.
// It reports whether a budget was created, adding an existing month
// does nothing.
func (s *BudgetStore) AddMonth(month types.Month) bool {
	if month.IsZero() {
		return false
	}

	if _, ok := s.entries[month]; ok {
		return false
	}

	s.entries[month] = &BudgetEntry{
		Month: month,
		Limit: decimal.Zero,
		Spent: decimal.Zero,
	}
	return true
}

// SetLimit replaces the limit for a month.
//
// The limit must not be negative and must not be lower than what has
// already been spent in the month.
func (s *BudgetStore) SetLimit(month types.Month, limit decimal.Decimal) error {
	entry, ok := s.entries[month]
	if !ok {
		return monthNotFound(month)
	}

	if limit.IsNegative() {
		return ErrLimitNegative
	}

	if limit.LessThan(entry.Spent) {
		return fmt.Errorf("%w: budget (%s) cannot be less than spent (%s)", ErrValidation, limit, entry.Spent)
	}

	entry.Limit = limit
	return nil
}

// Get returns a copy of the budget for a month.
func (s *BudgetStore) Get(month types.Month) (BudgetEntry, bool) {
	entry, ok := s.entries[month]
	if !ok {
		return BudgetEntry{}, false
	}

	return *entry, true
}

// Remaining returns the remaining budget for a month, zero
// if the month is not known.
func (s *BudgetStore) Remaining(month types.Month) decimal.Decimal {
	entry, ok := s.entries[month]
	if !ok {
		return decimal.Zero
	}

	return entry.Remaining()
}

// Months returns all months with a budget in chronological order.
func (s *BudgetStore) Months() []types.Month {
	months := make([]types.Month, 0, len(s.entries))
	for month := range s.entries {
		months = append(months, month)
	}

	slices.SortFunc(months, func(a, b types.Month) int {
		return a.Compare(b)
	})

	return months
}

// Entries returns copies of all budgets in chronological order.
func (s *BudgetStore) Entries() []BudgetEntry {
	entries := make([]BudgetEntry, 0, len(s.entries))
	for _, month := range s.Months() {
		entries = append(entries, *s.entries[month])
	}

	return entries
}

func (s *BudgetStore) Len() int {
	return len(s.entries)
}

// addSpent adjusts the amount spent for a month. Callers must have
// verified that the month exists.
func (s *BudgetStore) addSpent(month types.Month, amount decimal.Decimal) {
	entry := s.entries[month]
	entry.Spent = entry.Spent.Add(amount)
}

// put inserts or replaces an entry as is. Only used when restoring state.
func (s *BudgetStore) put(entry BudgetEntry) {
	s.entries[entry.Month] = &entry
}
