// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name          string
	Color         string           // Optional display hint
	MonthlyBudget *decimal.Decimal // Optional, defaults to 0
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	cache        adapter.InsightCache
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, cache adapter.InsightCache) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameEmpty,
			"category name must not be empty",
			domainerror.ErrCategoryNameEmpty,
		)
	}

	if input.MonthlyBudget != nil && input.MonthlyBudget.IsNegative() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNegativeMonthlyBudget,
			"monthly budget must not be negative",
			domainerror.ErrNegativeMonthlyBudget,
		)
	}

	// Name uniqueness is case-sensitive exact match.
	exists, err := uc.categoryRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(input.Name, input.Color, input.MonthlyBudget)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	invalidateInsights(ctx, uc.cache)

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
