// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CategoryID  *uuid.UUID // Optional
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.InsightCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.InsightCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description must not be empty",
			domainerror.ErrEmptyDescription,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if err := verifyCategoryReference(ctx, uc.categoryRepo, input.CategoryID); err != nil {
		return nil, err
	}

	txn := entity.NewTransaction(input.Date, input.Description, input.Amount, input.CategoryID)

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateInsights(ctx, uc.cache)

	return &CreateTransactionOutput{
		Transaction: txn,
	}, nil
}

// verifyCategoryReference ensures a non-nil category reference resolves to
// an existing category.
func verifyCategoryReference(ctx context.Context, categoryRepo adapter.CategoryRepository, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}

	if _, err := categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category ID not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return fmt.Errorf("failed to verify category reference: %w", err)
	}
	return nil
}

// invalidateInsights drops cached insight reports after a ledger write.
func invalidateInsights(ctx context.Context, cache adapter.InsightCache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateAll(ctx); err != nil {
		slog.Warn("Failed to invalidate insight cache", "error", err)
	}
}
