package mapping

import (
	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/models"
)

// ToModelDepartment converts a domain Department to a model Department.
func ToModelDepartment(d domain.Department) models.Department {
	return models.Department{
		DepartmentID:  d.DepartmentID,
		Name:          d.Name,
		MonthlyBudget: d.MonthlyBudget,
		AnnualBudget:  d.AnnualBudget,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepartment converts a model Department to a domain Department.
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID:  m.DepartmentID,
		Name:          m.Name,
		MonthlyBudget: m.MonthlyBudget,
		AnnualBudget:  m.AnnualBudget,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDepartmentSlice converts a slice of model Departments.
func ToDomainDepartmentSlice(ms []models.Department) []domain.Department {
	ds := make([]domain.Department, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDepartment(m)
	}
	return ds
}
