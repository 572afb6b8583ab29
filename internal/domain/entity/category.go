// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a named spending bucket with an optional monthly
// budget ceiling.
type Category struct {
	ID            uuid.UUID
	Name          string
	Color         string
	MonthlyBudget *decimal.Decimal // nil means no budget ceiling
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCategory creates a new Category entity.
// Note: a nil monthlyBudget is defaulted to zero here. A zero budget and an
// absent budget behave differently in the insight computations, so the
// nullable field is kept on the entity itself.
func NewCategory(name, color string, monthlyBudget *decimal.Decimal) *Category {
	now := time.Now().UTC()

	if monthlyBudget == nil {
		zero := decimal.Zero
		monthlyBudget = &zero
	}

	return &Category{
		ID:            uuid.New(),
		Name:          name,
		Color:         color,
		MonthlyBudget: monthlyBudget,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
