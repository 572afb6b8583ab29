// Package category contains category-related use cases.
package category

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

// UpdateCategoryInput represents the input for a partial category update.
// Nil fields are left untouched.
type UpdateCategoryInput struct {
	CategoryID    uuid.UUID
	Name          *string
	Color         *string
	MonthlyBudget *decimal.Decimal
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	cache        adapter.InsightCache
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, cache adapter.InsightCache) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameEmpty,
				"category name must not be empty",
				domainerror.ErrCategoryNameEmpty,
			)
		}

		if *input.Name != category.Name {
			exists, err := uc.categoryRepo.ExistsByName(ctx, *input.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryNameExists,
					"category with this new name already exists",
					domainerror.ErrCategoryNameExists,
				)
			}
		}

		category.Name = *input.Name
	}

	if input.Color != nil {
		category.Color = *input.Color
	}

	if input.MonthlyBudget != nil {
		if input.MonthlyBudget.IsNegative() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeNegativeMonthlyBudget,
				"monthly budget must not be negative",
				domainerror.ErrNegativeMonthlyBudget,
			)
		}
		budget := *input.MonthlyBudget
		category.MonthlyBudget = &budget
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	invalidateInsights(ctx, uc.cache)

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
