package domain

import "github.com/shopspring/decimal"

// Department groups users for budget tracking purposes.
type Department struct {
	DepartmentID  string          `json:"departmentID"` // Primary Key (e.g., UUID)
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"` // Non-negative
	AnnualBudget  decimal.Decimal `json:"annualBudget"`  // Non-negative
	AuditFields
}
