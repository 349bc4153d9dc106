package models

import (
	"encoding/json"
	"fmt"

	"github.com/envelope-zero/wallet/internal/types"
)

// Keys used to persist the state.
const (
	KeyBudgets      = "budgets"
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
)

// Snapshot is the serializable state of a session.
type Snapshot struct {
	Budgets      []BudgetEntry
	Transactions []Transaction

	// Categories are the custom labels in registration order.
	Categories []string
}

// EncodeBudgets serializes budgets as a JSON object keyed by month.
func EncodeBudgets(entries []BudgetEntry) (string, error) {
	byMonth := make(map[types.Month]BudgetEntry, len(entries))
	for _, e := range entries {
		byMonth[e.Month] = e
	}

	data, err := json.Marshal(byMonth)
	if err != nil {
		return "", fmt.Errorf("could not encode budgets: %w", err)
	}

	return string(data), nil
}

// DecodeBudgets parses the output of EncodeBudgets. The month of each
// entry is taken from its key.
func DecodeBudgets(text string) ([]BudgetEntry, error) {
	var byMonth map[types.Month]BudgetEntry
	if err := json.Unmarshal([]byte(text), &byMonth); err != nil {
		return nil, fmt.Errorf("could not decode budgets: %w", err)
	}

	entries := make([]BudgetEntry, 0, len(byMonth))
	for month, e := range byMonth {
		e.Month = month
		entries = append(entries, e)
	}

	return entries, nil
}

// EncodeTransactions serializes transactions as a JSON array.
func EncodeTransactions(transactions []Transaction) (string, error) {
	if transactions == nil {
		transactions = []Transaction{}
	}

	data, err := json.Marshal(transactions)
	if err != nil {
		return "", fmt.Errorf("could not encode transactions: %w", err)
	}

	return string(data), nil
}

// DecodeTransactions parses the output of EncodeTransactions.
func DecodeTransactions(text string) ([]Transaction, error) {
	var transactions []Transaction
	if err := json.Unmarshal([]byte(text), &transactions); err != nil {
		return nil, fmt.Errorf("could not decode transactions: %w", err)
	}

	return transactions, nil
}

// EncodeCategories serializes custom category labels as a JSON array.
func EncodeCategories(labels []string) (string, error) {
	if labels == nil {
		labels = []string{}
	}

	data, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("could not encode categories: %w", err)
	}

	return string(data), nil
}

// DecodeCategories parses the output of EncodeCategories.
func DecodeCategories(text string) ([]string, error) {
	var labels []string
	if err := json.Unmarshal([]byte(text), &labels); err != nil {
		return nil, fmt.Errorf("could not decode categories: %w", err)
	}

	return labels, nil
}
