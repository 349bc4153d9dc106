package controllers

import (
	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/shopspring/decimal"
)

// We use one type per Endpoint so that the API documentation stays readable.

type MonthListResponse struct {
	Data []models.Summary `json:"data"` // List of all months in chronological order
}

type MonthResponse struct {
	Data models.Summary `json:"data"` // Data for the month
}

type MonthCreate struct {
	Month string `json:"month" example:"2024-05"` // The month in YYYY-MM format. An empty month is ignored.
}

type MonthEditor struct {
	Limit *decimal.Decimal `json:"limit" example:"100"` // The new budget limit, must not be less than the amount spent
}

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"` // List of transactions in the order they were added
}

type TransactionResponse struct {
	Data models.Transaction `json:"data"` // Data for the transaction
}

type TransactionCreate struct {
	Category       string          `json:"category" example:"Others"`    // The category. Use "Others" to book on a custom category.
	CustomCategory string          `json:"customCategory" example:"Gym"` // The custom category, required if category is "Others"
	Amount         decimal.Decimal `json:"amount" example:"40"`          // The amount, must be positive
}

type BreakdownResponse struct {
	Data []models.Slice `json:"data"` // Spending per category, sorted by category
}

type CategoryListResponse struct {
	Data []string `json:"data"` // All categories, "Others" is always the last one
}

type CategoryCreate struct {
	Name string `json:"name" example:"Gym"` // Name of the new category
}

type SelectionResponse struct {
	Data Selection `json:"data"`
}

type Selection struct {
	Month *types.Month `json:"month" example:"2024-05"` // The selected month, null if none is selected
}

type SelectionEditor struct {
	Month string `json:"month" example:"2024-05"` // The month to select
}
