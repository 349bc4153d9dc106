package models

import (
	"fmt"
	"iter"
	"strings"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/internal/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single expense booked against the budget of a month.
// Transactions are immutable once created.
type Transaction struct {
	ID       uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Month    types.Month     `json:"month" example:"2024-05"`
	Date     types.Date      `json:"date" example:"2024-05-12"`
	Category string          `json:"category" example:"Food"`
	Amount   decimal.Decimal `json:"amount" example:"40"`
}

// TransactionLog is the ordered list of all transactions.
//
// It keeps the Spent values of the BudgetStore it was created with
// consistent with the transactions it contains.
type TransactionLog struct {
	budgets      *BudgetStore
	transactions []Transaction
}

func NewTransactionLog(budgets *BudgetStore) *TransactionLog {
	return &TransactionLog{
		budgets: budgets,
	}
}

// Add books a new transaction for the month.
//
// The amount must be positive, the category must not be blank and the
// month must have a budget with enough remaining to cover the amount.
// Nothing is changed if any of these checks fail.
func (l *TransactionLog) Add(month types.Month, category string, amount decimal.Decimal, date types.Date) (Transaction, error) {
	category = strings.TrimSpace(category)

	if !amount.IsPositive() {
		return Transaction{}, ErrAmountNotPositive
	}

	if category == "" {
		return Transaction{}, ErrCategoryEmpty
	}

	if _, ok := l.budgets.Get(month); !ok {
		return Transaction{}, fmt.Errorf("%w: no budget for month %s", ErrValidation, month)
	}

	remaining := l.budgets.Remaining(month)
	if amount.GreaterThan(remaining) {
		return Transaction{}, fmt.Errorf("%w: %s is more than the remaining %s for %s", ErrBudgetExceeded, amount, remaining, month)
	}

	t := Transaction{
		ID:       uuid.New(),
		Month:    month,
		Date:     date,
		Category: category,
		Amount:   amount,
	}

	l.transactions = append(l.transactions, t)
	l.budgets.addSpent(month, amount)

	return t, nil
}

// ListForMonth returns the transactions for a month in the order they
// were added. The sequence can be iterated any number of times.
func (l *TransactionLog) ListForMonth(month types.Month) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, t := range l.transactions {
			if t.Month != month {
				continue
			}

			if !yield(t) {
				return
			}
		}
	}
}

// All returns the sequence of all transactions in the order they were added.
func (l *TransactionLog) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, t := range l.transactions {
			if !yield(t) {
				return
			}
		}
	}
}

// Find returns the transaction with the given ID.
func (l *TransactionLog) Find(id uuid.UUID) (Transaction, error) {
	for _, t := range l.transactions {
		if t.ID == id {
			return t, nil
		}
	}

	return Transaction{}, fmt.Errorf("%w transaction with ID %s", ErrNotFound, id)
}

func (l *TransactionLog) Len() int {
	return len(l.transactions)
}

// restore replaces all transactions without validation.
func (l *TransactionLog) restore(transactions []Transaction) {
	l.transactions = append([]Transaction(nil), transactions...)
}
