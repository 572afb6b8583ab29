// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a single dated, signed monetary movement.
// By seed-data convention positive amounts are expenses and negative
// amounts are income or refunds; the sign is not enforced.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time // calendar date, stored at UTC midnight
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID // optional, can be uncategorized
	CreatedAt   time.Time  // server-assigned, immutable
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(date time.Time, description string, amount decimal.Decimal, categoryID *uuid.UUID) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Date:        NormalizeDate(date),
		Description: description,
		Amount:      amount,
		CategoryID:  categoryID,
		CreatedAt:   time.Now().UTC(),
	}
}

// NormalizeDate strips the time component so transactions carry a pure
// calendar date.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
