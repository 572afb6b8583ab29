// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerone/backend/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing. Zero-value fields are
// ignored; Limit and Offset are applied as given.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *uuid.UUID
	Query      string // substring match on description
	Limit      int
	Offset     int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create inserts a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	// Returns domain ErrTransactionNotFound when no transaction matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List retrieves transactions matching the filter, ordered by date descending.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
