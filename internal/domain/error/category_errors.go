// Package error defines domain-specific errors for the LedgerOne application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when attempting to create or rename a category to an existing name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameEmpty is returned when the category name is empty.
	ErrCategoryNameEmpty = errors.New("category name must not be empty")

	// ErrNegativeMonthlyBudget is returned when the monthly budget is negative.
	ErrNegativeMonthlyBudget = errors.New("monthly budget must not be negative")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameEmpty      CategoryErrorCode = "CAT-010001"
	ErrCodeNegativeMonthlyBudget  CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound       CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNameExists     CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryFields  CategoryErrorCode = "CAT-010005"
	ErrCodeInvalidCategoryID      CategoryErrorCode = "CAT-010006"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
