package services

import (
	"context"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// DashboardSvcFacade provides the read-side budget aggregation views.
// Nothing here mutates expenses or departments.
type DashboardSvcFacade interface {
	// GetDashboard composes all aggregate views for the month containing refMonth.
	GetDashboard(ctx context.Context, actorID string, refMonth time.Time) (*dto.DashboardResponse, error)

	// TotalsByDepartment sums current-month converted amounts per department,
	// paired with monthly budgets. Drafts and rejected expenses are excluded.
	TotalsByDepartment(ctx context.Context, refMonth time.Time) ([]domain.DepartmentSpend, error)

	// BudgetAlerts lists departments whose month-to-date spend ratio crossed
	// the threshold. Departments with a zero monthly budget never alert.
	BudgetAlerts(ctx context.Context, refMonth time.Time, threshold float64) ([]domain.BudgetAlert, error)

	// TotalsByCategory sums converted amounts per category across the window.
	TotalsByCategory(ctx context.Context, from, to time.Time) ([]domain.CategorySpend, error)
}
