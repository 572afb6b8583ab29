// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name          string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Color         string              `gorm:"type:varchar(20)"`
	MonthlyBudget decimal.NullDecimal `gorm:"type:decimal(20,4)"`
	CreatedAt     time.Time           `gorm:"not null"`
	UpdatedAt     time.Time           `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var budget *decimal.Decimal
	if m.MonthlyBudget.Valid {
		b := m.MonthlyBudget.Decimal
		budget = &b
	}

	return &entity.Category{
		ID:            m.ID,
		Name:          m.Name,
		Color:         m.Color,
		MonthlyBudget: budget,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var budget decimal.NullDecimal
	if category.MonthlyBudget != nil {
		budget = decimal.NullDecimal{Decimal: *category.MonthlyBudget, Valid: true}
	}

	return &CategoryModel{
		ID:            category.ID,
		Name:          category.Name,
		Color:         category.Color,
		MonthlyBudget: budget,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}
