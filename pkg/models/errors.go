package models

import (
	"errors"
	"fmt"
)

// Error kinds. Errors returned by the models package wrap exactly one of
// these and can be checked with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrBudgetExceeded = errors.New("this would exceed your budget")
	ErrNotFound       = errors.New("there is no")
)

var (
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrLimitNegative     = fmt.Errorf("%w: the budget limit must not be negative", ErrValidation)
	ErrCategoryEmpty     = fmt.Errorf("%w: category must not be empty", ErrValidation)
	ErrCategoryReserved  = fmt.Errorf("%w: %q cannot be used as a custom category", ErrValidation, CategoryOthers)
	ErrMonthInvalid      = fmt.Errorf("%w: month must be in YYYY-MM format", ErrValidation)
)

func monthNotFound(month fmt.Stringer) error {
	return fmt.Errorf("%w budget for month %s", ErrNotFound, month)
}
