package dto

import (
	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse aggregates the read-side views the dashboard renders.
type DashboardResponse struct {
	TotalExpenses      int             `json:"totalExpenses"`
	PendingCount       int             `json:"pendingCount"`
	ApprovedCount      int             `json:"approvedCount"`
	RejectedCount      int             `json:"rejectedCount"`
	ApprovedTotal      decimal.Decimal `json:"approvedTotal"`
	CurrentMonthTotal  decimal.Decimal `json:"currentMonthTotal"`
	PreviousMonthTotal decimal.Decimal `json:"previousMonthTotal"`

	// MonthVariation is (current - previous) / previous. Nil when the
	// previous month total is zero: the ratio is undefined, not infinite.
	MonthVariation *decimal.Decimal `json:"monthVariation,omitempty"`

	Departments []domain.DepartmentSpend `json:"departments"`
	Alerts      []domain.BudgetAlert     `json:"alerts"`
	Categories  []domain.CategorySpend   `json:"categories"`
}
