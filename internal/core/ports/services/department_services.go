package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// DepartmentSvcFacade manages departments and their budgets.
type DepartmentSvcFacade interface {
	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	// GetDepartmentByID retrieves a department.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// UpdateDepartmentBudget sets new non-negative budget limits. Admin only.
	UpdateDepartmentBudget(ctx context.Context, departmentID string, req dto.UpdateDepartmentBudgetRequest, actorID string) (*domain.Department, error)
}
