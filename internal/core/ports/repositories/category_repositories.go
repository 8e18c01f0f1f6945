package repositories

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for expense categories.
type CategoryRepository interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByID retrieves a category by ID, active or not.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves categories; when activeOnly is true inactive
	// (soft-deleted) categories are excluded.
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)

	// UpdateCategory updates name, description, color and active flag.
	UpdateCategory(ctx context.Context, category domain.Category) error
}
