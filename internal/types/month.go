// Package types implements special types for the wallet.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Month is a month in a specific year.
//
// Months are always normalized to the first day of the month at 00:00 UTC,
// so they can be compared with == and used as map keys.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("could not parse month %q, expected YYYY-MM format", s)
	}

	return MonthOf(t), nil
}

// ParseMonthLoose parses a month like ParseMonth, but also accepts months
// without a leading zero, e.g. "2024-6".
func ParseMonthLoose(s string) (Month, error) {
	t, err := time.Parse("2006-1", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("could not parse month %q, expected YYYY-MM format", s)
	}

	return MonthOf(t), nil
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalText implements the encoding.TextMarshaler interface.
//
// This makes Month usable as a key for JSON objects.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (m *Month) UnmarshalText(data []byte) error {
	month, err := ParseMonth(string(data))
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the month formatted as YYYY-MM.
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// An empty string or null leaves the month untouched.
func (m *Month) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("month must be a string in YYYY-MM format: %w", err)
	}

	if value == "" {
		return nil
	}

	return m.UnmarshalText([]byte(value))
}

// UnmarshalParam implements gin's BindUnmarshaler so that months can be
// bound from URI parameters.
func (m *Month) UnmarshalParam(p string) error {
	return m.UnmarshalText([]byte(p))
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}

// Compare returns -1 if m is before n, 1 if it is after n and 0 otherwise.
func (m Month) Compare(n Month) int {
	return time.Time(m).Compare(time.Time(n))
}

// FirstDay returns the first day of the month as time.Time.
func (m Month) FirstDay() time.Time {
	return time.Time(m)
}
