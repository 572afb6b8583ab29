// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for a partial transaction
// update. Nil fields are left untouched. ClearCategory detaches the
// transaction from its category.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.InsightCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.InsightCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if input.Date != nil {
		txn.Date = entity.NormalizeDate(*input.Date)
	}

	if input.Description != nil {
		if *input.Description == "" {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeEmptyDescription,
				"description must not be empty",
				domainerror.ErrEmptyDescription,
			)
		}
		txn.Description = *input.Description
	}

	if input.Amount != nil {
		txn.Amount = *input.Amount
	}

	switch {
	case input.ClearCategory:
		txn.CategoryID = nil
	case input.CategoryID != nil:
		if err := verifyCategoryReference(ctx, uc.categoryRepo, input.CategoryID); err != nil {
			return nil, err
		}
		categoryID := *input.CategoryID
		txn.CategoryID = &categoryID
	}

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateInsights(ctx, uc.cache)

	return &UpdateTransactionOutput{
		Transaction: txn,
	}, nil
}
