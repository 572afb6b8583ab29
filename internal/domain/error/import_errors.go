// Package error defines domain-specific errors for the LedgerOne application.
package error

import "errors"

// CSV import domain errors.
var (
	// ErrMissingRequiredColumns is returned when the CSV header lacks a required column.
	// This error is fatal to the whole import; per-row failures are not.
	ErrMissingRequiredColumns = errors.New("CSV must contain the columns: date, description, amount")

	// ErrEmptyImportFile is returned when the uploaded file has no header row.
	ErrEmptyImportFile = errors.New("CSV file is empty")
)

// ImportErrorCode defines error codes for CSV import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingRequiredColumns ImportErrorCode = "IMP-010001"
	ErrCodeEmptyImportFile        ImportErrorCode = "IMP-010002"
	ErrCodeMissingImportFile      ImportErrorCode = "IMP-010003"

	// Rate limiting (02XXXX)
	ErrCodeRateLimited ImportErrorCode = "IMP-020001"
)

// ImportError represents a CSV import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
