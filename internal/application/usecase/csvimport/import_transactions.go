// Package csvimport contains the CSV batch import use case.
package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// requiredColumns are the header columns every import file must carry.
// The category column is optional.
var requiredColumns = []string{"date", "description", "amount"}

// dateLayouts are tried in order when parsing the date cell.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// RowError records a single failed data row. Line numbers are 1-based and
// count data rows only.
type RowError struct {
	Line  int               `json:"line"`
	Data  map[string]string `json:"data"`
	Error string            `json:"error"`
}

// ImportTransactionsInput represents the input for a CSV import.
type ImportTransactionsInput struct {
	Reader io.Reader
}

// ImportTransactionsOutput represents the result of a best-effort batch import.
type ImportTransactionsOutput struct {
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

// ImportTransactionsUseCase parses an uploaded CSV and inserts transactions
// row by row. A bad row is recorded and skipped; the batch never aborts.
// Categories referenced by name are resolved or created up front for each
// row, and that creation is deliberately NOT rolled back when the row's
// transaction insert later fails: category get-or-create and transaction
// insertion are two independent commits.
type ImportTransactionsUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.InsightCache
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.InsightCache,
) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute runs the import. It fails fast with an ImportError when the
// header is unusable; every later failure is per-row and recoverable.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	reader := csv.NewReader(input.Reader)
	reader.FieldsPerRecord = -1 // row width errors are handled per row
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domainerror.NewImportError(
				domainerror.ErrCodeEmptyImportFile,
				"CSV file is empty",
				domainerror.ErrEmptyImportFile,
			)
		}
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeMissingRequiredColumns,
			"CSV header could not be parsed",
			err,
		)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, domainerror.NewImportError(
				domainerror.ErrCodeMissingRequiredColumns,
				fmt.Sprintf("CSV must contain the following columns: %s", strings.Join(requiredColumns, ", ")),
				domainerror.ErrMissingRequiredColumns,
			)
		}
	}

	output := &ImportTransactionsOutput{
		Errors: []RowError{},
	}

	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			uc.recordRowError(output, line, rowData(header, record), err)
			continue
		}

		if err := uc.importRow(ctx, header, columns, record); err != nil {
			uc.recordRowError(output, line, rowData(header, record), err)
			continue
		}

		output.Inserted++
	}

	if output.Inserted > 0 && uc.cache != nil {
		if err := uc.cache.InvalidateAll(ctx); err != nil {
			slog.Warn("Failed to invalidate insight cache after import", "error", err)
		}
	}

	slog.Info("CSV import finished",
		"inserted", output.Inserted,
		"skipped", output.Skipped,
	)

	return output, nil
}

// importRow processes a single data row: category get-or-create, field
// parsing, then transaction insert, in that order.
func (uc *ImportTransactionsUseCase) importRow(ctx context.Context, header []string, columns map[string]int, record []string) error {
	var category *entity.Category

	// Category resolution happens first and commits independently of the
	// transaction insert below.
	if idx, ok := columns["category"]; ok {
		name := strings.TrimSpace(cell(record, idx))
		if name != "" {
			resolved, err := uc.getOrCreateCategory(ctx, name)
			if err != nil {
				return err
			}
			category = resolved
		}
	}

	date, err := parseDate(cell(record, columns["date"]))
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(cell(record, columns["amount"])))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	description := cell(record, columns["description"])
	if description == "" {
		return domainerror.ErrEmptyDescription
	}

	var catID *uuid.UUID
	if category != nil {
		id := category.ID
		catID = &id
	}

	txn := entity.NewTransaction(date, description, amount, catID)
	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// getOrCreateCategory resolves a category by exact name or creates it with
// a default budget of zero. The operation is idempotent under sequential
// row processing.
func (uc *ImportTransactionsUseCase) getOrCreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	existing, err := uc.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}

	category := entity.NewCategory(name, "", nil)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}

	slog.Info("Created category during CSV import", "name", name)
	return category, nil
}

// recordRowError appends a row error and bumps the skipped counter.
func (uc *ImportTransactionsUseCase) recordRowError(output *ImportTransactionsOutput, line int, data map[string]string, err error) {
	output.Errors = append(output.Errors, RowError{
		Line:  line,
		Data:  data,
		Error: err.Error(),
	})
	output.Skipped++
}

// parseDate accepts ISO-8601 dates with or without a time component.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// cell returns the record value at idx, tolerating short rows.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// rowData maps the raw record back onto header names for error reporting.
func rowData(header, record []string) map[string]string {
	data := make(map[string]string, len(header))
	for i, name := range header {
		data[strings.TrimSpace(name)] = cell(record, i)
	}
	return data
}
