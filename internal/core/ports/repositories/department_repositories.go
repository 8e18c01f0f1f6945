package repositories

import (
	"context"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	// FindDepartmentByID retrieves a department by ID.
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	// UpdateDepartmentBudget sets the monthly and annual budgets.
	UpdateDepartmentBudget(ctx context.Context, departmentID string, monthly, annual decimal.Decimal, updatedBy string, updatedAt time.Time) error
}
