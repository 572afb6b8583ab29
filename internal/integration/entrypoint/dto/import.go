// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ledgerone/backend/internal/application/usecase/csvimport"
)

// ImportRowErrorResponse describes one skipped CSV row.
type ImportRowErrorResponse struct {
	Line  int               `json:"line"`
	Data  map[string]string `json:"data"`
	Error string            `json:"error"`
}

// ImportCSVResponse represents the result of a CSV import request.
type ImportCSVResponse struct {
	Inserted int                      `json:"inserted"`
	Skipped  int                      `json:"skipped"`
	Errors   []ImportRowErrorResponse `json:"errors"`
}

// ToImportCSVResponse converts an import use case output to its response DTO.
func ToImportCSVResponse(output *csvimport.ImportTransactionsOutput) ImportCSVResponse {
	rowErrors := make([]ImportRowErrorResponse, len(output.Errors))
	for i, rowErr := range output.Errors {
		rowErrors[i] = ImportRowErrorResponse{
			Line:  rowErr.Line,
			Data:  rowErr.Data,
			Error: rowErr.Error,
		}
	}

	return ImportCSVResponse{
		Inserted: output.Inserted,
		Skipped:  output.Skipped,
		Errors:   rowErrors,
	}
}
