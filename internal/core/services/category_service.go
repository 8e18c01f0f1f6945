package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/google/uuid"
)

var ErrCategoryNameRequired = fmt.Errorf("%w: category name cannot be blank", apperrors.ErrValidation)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository, userRepo portsrepo.UserRepository) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{userRepo: userRepo},
		categoryRepo: categoryRepo,
	}
}

// CreateCategory creates a new active category. Admin only.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actorID string) (*domain.Category, error) {
	actor, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves a category, active or not.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists categories, optionally including inactive ones.
func (s *categoryService) ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, !includeInactive)
}

// UpdateCategory updates category details. Admin only.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actorID string) (*domain.Category, error) {
	actor, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrCategoryNameRequired
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = actor.UserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

// DeactivateCategory soft-deletes a category so historical expenses keep a
// valid reference. Admin only. Already-inactive categories are left as is.
func (s *categoryService) DeactivateCategory(ctx context.Context, categoryID string, actorID string) error {
	actor, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !category.IsActive {
		return nil
	}

	category.IsActive = false
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = actor.UserID
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to deactivate category", slog.String("category_id", categoryID))
		return err
	}
	s.LogInfo(ctx, "Category deactivated", slog.String("category_id", categoryID))
	return nil
}
