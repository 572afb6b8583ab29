// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/ledgerone/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name          string   `json:"name" binding:"required,min=1,max=100"`
	Color         string   `json:"color,omitempty"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty" binding:"omitempty,gte=0"`
}

// UpdateCategoryRequest represents the request body for a partial category update.
type UpdateCategoryRequest struct {
	Name          *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Color         *string  `json:"color,omitempty"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty" binding:"omitempty,gte=0"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Color         string    `json:"color,omitempty"`
	MonthlyBudget *string   `json:"monthly_budget"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	var budget *string
	if cat.MonthlyBudget != nil {
		b := cat.MonthlyBudget.String()
		budget = &b
	}

	return CategoryResponse{
		ID:            cat.ID.String(),
		Name:          cat.Name,
		Color:         cat.Color,
		MonthlyBudget: budget,
		CreatedAt:     cat.CreatedAt,
		UpdatedAt:     cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to response DTOs.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = ToCategoryResponse(cat)
	}
	return responses
}
