// Package error defines domain-specific errors for the LedgerOne application.
package error

import "errors"

// Insight domain errors.
var (
	// ErrInvalidMonthFormat is returned when a month parameter does not parse as YYYY-MM.
	ErrInvalidMonthFormat = errors.New("invalid month format, use YYYY-MM")

	// ErrMissingDateRange is returned when a trend request lacks from_date or to_date.
	ErrMissingDateRange = errors.New("from_date and to_date are required")

	// ErrInvalidDateRange is returned when to_date precedes from_date.
	ErrInvalidDateRange = errors.New("to_date must not be before from_date")
)

// InsightErrorCode defines error codes for insight errors.
// Format: INS-XXYYYY where XX is category and YYYY is specific error.
type InsightErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonthFormat InsightErrorCode = "INS-010001"
	ErrCodeMissingDateRange   InsightErrorCode = "INS-010002"
	ErrCodeInvalidDateRange   InsightErrorCode = "INS-010003"
)

// InsightError represents an insight error with code and message.
type InsightError struct {
	Code    InsightErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InsightError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InsightError) Unwrap() error {
	return e.Err
}

// NewInsightError creates a new InsightError with the given code and message.
func NewInsightError(code InsightErrorCode, message string, err error) *InsightError {
	return &InsightError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
