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
	"github.com/shopspring/decimal"
)

// defaultAlertThreshold is the spend/budget ratio at which a department
// starts warning. Crossing 1.0 upgrades the alert to critical.
const defaultAlertThreshold = 0.8

// uncategorizedColor tags the bucket of expenses that carry no category.
const uncategorizedColor = "#9e9e9e"

type dashboardService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseReader
	departmentRepo portsrepo.DepartmentRepository
	categoryRepo   portsrepo.CategoryRepository
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// NewDashboardService creates a new budget aggregation service.
func NewDashboardService(
	expenseRepo portsrepo.ExpenseReader,
	departmentRepo portsrepo.DepartmentRepository,
	categoryRepo portsrepo.CategoryRepository,
	userRepo portsrepo.UserRepository,
) portssvc.DashboardSvcFacade {
	return &dashboardService{
		BaseService:    BaseService{userRepo: userRepo},
		expenseRepo:    expenseRepo,
		departmentRepo: departmentRepo,
		categoryRepo:   categoryRepo,
	}
}

// monthWindow returns the [from, to) bounds of the calendar month containing t, in UTC.
func monthWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// countedSpend sums converted amounts of the expenses that consume budget.
// Drafts and rejected expenses are excluded.
func countedSpend(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.State.CountsTowardsSpend() {
			total = total.Add(e.ConvertedAmount)
		}
	}
	return total
}

// GetDashboard composes every aggregate view for the month containing refMonth.
func (s *dashboardService) GetDashboard(ctx context.Context, actorID string, refMonth time.Time) (*dto.DashboardResponse, error) {
	if _, err := s.FetchActor(ctx, actorID); err != nil {
		return nil, err
	}

	from, to := monthWindow(refMonth)
	current, err := s.expenseRepo.ListExpensesBetween(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list current month expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", apperrors.ErrInternal)
	}

	prevFrom, prevTo := monthWindow(from.AddDate(0, -1, 0))
	previous, err := s.expenseRepo.ListExpensesBetween(ctx, prevFrom, prevTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to list previous month expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", apperrors.ErrInternal)
	}

	resp := &dto.DashboardResponse{
		TotalExpenses:      len(current),
		ApprovedTotal:      decimal.Zero,
		CurrentMonthTotal:  countedSpend(current),
		PreviousMonthTotal: countedSpend(previous),
	}
	for _, e := range current {
		switch e.State {
		case domain.StatePendingApproval:
			resp.PendingCount++
		case domain.StateApproved:
			resp.ApprovedCount++
			resp.ApprovedTotal = resp.ApprovedTotal.Add(e.ConvertedAmount)
		case domain.StateRejected:
			resp.RejectedCount++
		}
	}

	// Month-over-month variation is undefined when there was nothing to
	// compare against; nil tells the client "no figure", not "zero".
	if resp.PreviousMonthTotal.IsPositive() {
		variation := resp.CurrentMonthTotal.Sub(resp.PreviousMonthTotal).Div(resp.PreviousMonthTotal)
		resp.MonthVariation = &variation
	}

	if resp.Departments, err = s.totalsByDepartment(ctx, current); err != nil {
		return nil, err
	}
	resp.Alerts = alertsFrom(resp.Departments, defaultAlertThreshold)
	if resp.Categories, err = s.totalsByCategory(ctx, current); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Dashboard composed",
		slog.Time("month", from),
		slog.Int("expense_count", len(current)),
		slog.Int("alert_count", len(resp.Alerts)),
	)
	return resp, nil
}

// TotalsByDepartment sums current-month counted spend per department.
// Every department appears, spend or not, so budget consumption is visible
// even at zero.
func (s *dashboardService) TotalsByDepartment(ctx context.Context, refMonth time.Time) ([]domain.DepartmentSpend, error) {
	from, to := monthWindow(refMonth)
	expenses, err := s.expenseRepo.ListExpensesBetween(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for department totals")
		return nil, fmt.Errorf("failed to list expenses: %w", apperrors.ErrInternal)
	}
	return s.totalsByDepartment(ctx, expenses)
}

func (s *dashboardService) totalsByDepartment(ctx context.Context, expenses []domain.Expense) ([]domain.DepartmentSpend, error) {
	departments, err := s.departmentRepo.ListDepartments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, fmt.Errorf("failed to list departments: %w", apperrors.ErrInternal)
	}

	spends := make([]domain.DepartmentSpend, 0, len(departments))
	index := make(map[string]int, len(departments))
	for _, dept := range departments {
		index[dept.DepartmentID] = len(spends)
		spends = append(spends, domain.DepartmentSpend{
			DepartmentID:   dept.DepartmentID,
			DepartmentName: dept.Name,
			Spent:          decimal.Zero,
			MonthlyBudget:  dept.MonthlyBudget,
		})
	}

	for _, e := range expenses {
		if !e.State.CountsTowardsSpend() {
			continue
		}
		i, ok := index[e.DepartmentID]
		if !ok {
			// Department removed after the expense was filed; nothing to
			// attribute the spend to.
			s.LogWarn(ctx, "Expense references unknown department",
				slog.String("expense_id", e.ExpenseID),
				slog.String("department_id", e.DepartmentID),
			)
			continue
		}
		spends[i].Spent = spends[i].Spent.Add(e.ConvertedAmount)
		spends[i].ExpenseCount++
	}
	return spends, nil
}

// BudgetAlerts lists departments whose month-to-date ratio crossed the threshold.
func (s *dashboardService) BudgetAlerts(ctx context.Context, refMonth time.Time, threshold float64) ([]domain.BudgetAlert, error) {
	if threshold <= 0 {
		threshold = defaultAlertThreshold
	}
	spends, err := s.TotalsByDepartment(ctx, refMonth)
	if err != nil {
		return nil, err
	}
	return alertsFrom(spends, threshold), nil
}

// alertsFrom grades each department's spend ratio. Departments with a zero
// monthly budget are skipped entirely: no budget means nothing to exhaust,
// and the ratio would divide by zero.
func alertsFrom(spends []domain.DepartmentSpend, threshold float64) []domain.BudgetAlert {
	thresholdDec := decimal.NewFromFloat(threshold)
	alerts := make([]domain.BudgetAlert, 0)
	for _, sp := range spends {
		if !sp.MonthlyBudget.IsPositive() {
			continue
		}
		ratio := sp.Spent.Div(sp.MonthlyBudget)
		if ratio.LessThan(thresholdDec) {
			continue
		}
		level := domain.AlertWarning
		if ratio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			level = domain.AlertCritical
		}
		alerts = append(alerts, domain.BudgetAlert{
			DepartmentID:   sp.DepartmentID,
			DepartmentName: sp.DepartmentName,
			MonthlyBudget:  sp.MonthlyBudget,
			Spent:          sp.Spent,
			Ratio:          ratio,
			Level:          level,
		})
	}
	return alerts
}

// TotalsByCategory sums counted spend per category across [from, to).
func (s *dashboardService) TotalsByCategory(ctx context.Context, from, to time.Time) ([]domain.CategorySpend, error) {
	expenses, err := s.expenseRepo.ListExpensesBetween(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for category totals")
		return nil, fmt.Errorf("failed to list expenses: %w", apperrors.ErrInternal)
	}
	return s.totalsByCategory(ctx, expenses)
}

func (s *dashboardService) totalsByCategory(ctx context.Context, expenses []domain.Expense) ([]domain.CategorySpend, error) {
	// Inactive categories are included so historical expenses still land
	// in their original bucket.
	categories, err := s.categoryRepo.ListCategories(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", apperrors.ErrInternal)
	}

	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.CategoryID] = c
	}

	buckets := make(map[string]*domain.CategorySpend)
	order := make([]string, 0)
	for _, e := range expenses {
		if !e.State.CountsTowardsSpend() {
			continue
		}
		key := ""
		if e.CategoryID != nil {
			key = *e.CategoryID
		}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.CategorySpend{
				CategoryID:   key,
				CategoryName: "Uncategorized",
				Color:        uncategorizedColor,
				Total:        decimal.Zero,
			}
			if c, found := byID[key]; found {
				bucket.CategoryName = c.Name
				bucket.Color = c.Color
			}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.Total = bucket.Total.Add(e.ConvertedAmount)
		bucket.ExpenseCount++
	}

	spends := make([]domain.CategorySpend, 0, len(order))
	for _, key := range order {
		spends = append(spends, *buckets[key])
	}
	return spends, nil
}
