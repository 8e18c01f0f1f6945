package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
)

var ErrNegativeBudget = fmt.Errorf("%w: budgets cannot be negative", apperrors.ErrValidation)

type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepository
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

// NewDepartmentService creates a new department service.
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepository, userRepo portsrepo.UserRepository) portssvc.DepartmentSvcFacade {
	return &departmentService{
		BaseService:    BaseService{userRepo: userRepo},
		departmentRepo: departmentRepo,
	}
}

// ListDepartments retrieves all departments.
func (s *departmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departmentRepo.ListDepartments(ctx)
}

// GetDepartmentByID retrieves a department.
func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	return s.departmentRepo.FindDepartmentByID(ctx, departmentID)
}

// UpdateDepartmentBudget sets new budget limits. Admin only. A zero monthly
// budget is allowed and means the department is exempt from budget alerts.
func (s *departmentService) UpdateDepartmentBudget(ctx context.Context, departmentID string, req dto.UpdateDepartmentBudgetRequest, actorID string) (*domain.Department, error) {
	actor, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if req.MonthlyBudget.IsNegative() || req.AnnualBudget.IsNegative() {
		return nil, ErrNegativeBudget
	}

	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.departmentRepo.UpdateDepartmentBudget(ctx, departmentID, req.MonthlyBudget, req.AnnualBudget, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update department budget", slog.String("department_id", departmentID))
		return nil, err
	}

	department.MonthlyBudget = req.MonthlyBudget
	department.AnnualBudget = req.AnnualBudget
	department.LastUpdatedAt = now
	department.LastUpdatedBy = actor.UserID
	s.LogInfo(ctx, "Department budget updated",
		slog.String("department_id", departmentID),
		slog.String("monthly_budget", req.MonthlyBudget.String()),
	)
	return department, nil
}
