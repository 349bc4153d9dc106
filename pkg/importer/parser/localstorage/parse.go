// Package localstorage parses the data the browser version of the wallet
// kept in localStorage.
package localstorage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/internal/uuid"
	"github.com/envelope-zero/wallet/pkg/models"
)

// Parse reads an export and returns the state it describes.
//
// Every transaction gets a new ID. The spent amounts of the export are
// ignored, they are recomputed from the transactions when the snapshot is
// restored.
func Parse(f io.Reader) (models.Snapshot, error) {
	content, err := io.ReadAll(f)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("could not read data from file: %w", err)
	}

	var export Export
	err = json.Unmarshal(content, &export)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("not a valid wallet export: %w", err)
	}

	var snap models.Snapshot

	snap.Budgets, err = parseBudgets(export.Budgets)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("error parsing budgets: %w", err)
	}

	snap.Transactions, err = parseTransactions(export.Transactions, export.Locale)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("error parsing transactions: %w", err)
	}

	return snap, nil
}

// unquote returns the JSON contained in a JSON string. Any other value is
// returned unchanged.
func unquote(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return raw, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}

	return json.RawMessage(s), nil
}

// isEmpty reports whether a value is missing or null.
func isEmpty(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func parseBudgets(raw json.RawMessage) ([]models.BudgetEntry, error) {
	raw, err := unquote(raw)
	if err != nil {
		return nil, err
	}

	if isEmpty(raw) {
		return []models.BudgetEntry{}, nil
	}

	var budgets map[string]Budget
	if err := json.Unmarshal(raw, &budgets); err != nil {
		return nil, err
	}

	entries := make([]models.BudgetEntry, 0, len(budgets))
	for key, b := range budgets {
		// The browser version created budgets for an empty month
		// when nothing was selected
		if strings.TrimSpace(key) == "" {
			continue
		}

		month, err := types.ParseMonth(key)
		if err != nil {
			return nil, err
		}

		if b.Budget.IsNegative() {
			return nil, fmt.Errorf("%w: budget for %s is %s", models.ErrLimitNegative, month, b.Budget)
		}

		entries = append(entries, models.BudgetEntry{
			Month: month,
			Limit: b.Budget,
			Spent: b.TotalSpent,
		})
	}

	return entries, nil
}

func parseTransactions(raw json.RawMessage, locale string) ([]models.Transaction, error) {
	raw, err := unquote(raw)
	if err != nil {
		return nil, err
	}

	if isEmpty(raw) {
		return []models.Transaction{}, nil
	}

	var exported []Transaction
	if err := json.Unmarshal(raw, &exported); err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(exported))
	for i, t := range exported {
		month, err := types.ParseMonth(t.MonthYear)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		if !t.Amount.IsPositive() {
			return nil, fmt.Errorf("transaction %d: %w", i, models.ErrAmountNotPositive)
		}

		category := strings.TrimSpace(t.Category)
		if category == "" {
			return nil, fmt.Errorf("transaction %d: %w", i, models.ErrCategoryEmpty)
		}

		// IDs are creation timestamps. They are only used as a fallback for the date.
		id, _ := t.ID.Int64()

		transactions = append(transactions, models.Transaction{
			ID:       uuid.New(),
			Month:    month,
			Date:     parseDate(t.Date, locale, id, month),
			Category: category,
			Amount:   t.Amount,
		})
	}

	return transactions, nil
}
