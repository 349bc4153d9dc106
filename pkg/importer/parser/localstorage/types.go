package localstorage

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Export is the content of the browser's localStorage. Both values are
// either JSON or JSON encoded as a string, the way they are stored in
// localStorage itself.
type Export struct {
	Budgets      json.RawMessage `json:"budgets"`
	Transactions json.RawMessage `json:"transactions"`
	Locale       string          `json:"locale"` // BCP 47 tag of the browser the data comes from, optional
}

type Budget struct {
	Budget     decimal.Decimal `json:"budget"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type Transaction struct {
	ID        json.Number     `json:"id"` // Milliseconds since the epoch at creation time
	MonthYear string          `json:"monthYear"`
	Date      string          `json:"date"` // Formatted with toLocaleDateString
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
}
