package dto

import (
	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateDepartmentBudgetRequest sets new budget limits for a department.
// Both amounts must be non-negative.
type UpdateDepartmentBudgetRequest struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget" binding:"required"`
	AnnualBudget  decimal.Decimal `json:"annualBudget" binding:"required"`
}

// DepartmentResponse defines the data returned for a department.
type DepartmentResponse struct {
	DepartmentID  string          `json:"departmentID"`
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	AnnualBudget  decimal.Decimal `json:"annualBudget"`
}

// ToDepartmentResponse converts a domain.Department to its response DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID:  d.DepartmentID,
		Name:          d.Name,
		MonthlyBudget: d.MonthlyBudget,
		AnnualBudget:  d.AnnualBudget,
	}
}

// ToDepartmentResponses converts a slice of domain departments.
func ToDepartmentResponses(departments []domain.Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(departments))
	for i := range departments {
		res[i] = ToDepartmentResponse(&departments[i])
	}
	return res
}
