package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// CategorySvcFacade manages expense categories.
type CategorySvcFacade interface {
	// CreateCategory creates a new active category. Admin only.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actorID string) (*domain.Category, error)

	// GetCategoryByID retrieves a category, active or not.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories lists categories, optionally including inactive ones.
	ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error)

	// UpdateCategory updates category details. Admin only.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actorID string) (*domain.Category, error)

	// DeactivateCategory soft-deletes a category; historical expenses keep
	// referencing it. Admin only.
	DeactivateCategory(ctx context.Context, categoryID string, actorID string) error
}
