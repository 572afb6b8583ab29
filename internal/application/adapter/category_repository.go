// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerone/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	// Returns domain ErrCategoryNotFound when no category matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by its exact, case-sensitive name.
	// Returns (nil, nil) when no category matches.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// FindAll retrieves every category.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// ExistsByName checks if a category with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. References from transactions are nulled
	// out in the same database transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
