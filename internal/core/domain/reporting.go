package domain

import (
	"github.com/shopspring/decimal"
)

// AlertLevel grades how close a department is to exhausting its monthly budget.
type AlertLevel string

const (
	AlertWarning  AlertLevel = "WARNING"  // spent/budget in [threshold, 1.0)
	AlertCritical AlertLevel = "CRITICAL" // spent/budget >= 1.0
)

// DepartmentSpend pairs a department's current-month spend with its monthly budget.
type DepartmentSpend struct {
	DepartmentID   string          `json:"departmentID"`
	DepartmentName string          `json:"departmentName"`
	Spent          decimal.Decimal `json:"spent"` // Converted amounts, current month
	MonthlyBudget  decimal.Decimal `json:"monthlyBudget"`
	ExpenseCount   int             `json:"expenseCount"`
}

// BudgetAlert flags a department whose month-to-date spend crossed the alert threshold.
type BudgetAlert struct {
	DepartmentID   string          `json:"departmentID"`
	DepartmentName string          `json:"departmentName"`
	MonthlyBudget  decimal.Decimal `json:"monthlyBudget"`
	Spent          decimal.Decimal `json:"spent"`
	Ratio          decimal.Decimal `json:"ratio"` // spent / monthlyBudget
	Level          AlertLevel      `json:"level"`
}

// CategorySpend sums expenses per category across the aggregation window,
// carrying the category color for chart rendering by presentation collaborators.
type CategorySpend struct {
	CategoryID   string          `json:"categoryID,omitempty"` // Empty for the uncategorized bucket
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Total        decimal.Decimal `json:"total"`
	ExpenseCount int             `json:"expenseCount"`
}
