package models

import "github.com/shopspring/decimal"

// Department represents a department row in the database.
type Department struct {
	DepartmentID  string          `db:"department_id"`
	Name          string          `db:"name"`
	MonthlyBudget decimal.Decimal `db:"monthly_budget"`
	AnnualBudget  decimal.Decimal `db:"annual_budget"`
	AuditFields
}
