package mapping

import (
	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense.
func ToModelExpense(d domain.Expense) models.Expense {
	m := models.Expense{
		ExpenseID:        d.ExpenseID,
		Description:      d.Description,
		OriginalAmount:   d.OriginalAmount,
		OriginalCurrency: d.OriginalCurrency,
		ConvertedAmount:  d.ConvertedAmount,
		ExchangeRate:     d.ExchangeRate,
		State:            string(d.State),
		ClaimDate:        d.ClaimDate,
		OwnerID:          d.OwnerID,
		DepartmentID:     d.DepartmentID,
		CategoryID:       d.CategoryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.Receipt != nil {
		m.ReceiptStorageID = &d.Receipt.StorageID
		m.ReceiptURL = &d.Receipt.URL
		m.ReceiptDisplayName = &d.Receipt.DisplayName
	}
	if d.Extraction != nil {
		m.Analyzed = d.Extraction.Analyzed
		confidence := d.Extraction.Confidence
		m.Confidence = &confidence
	}
	return m
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) domain.Expense {
	d := domain.Expense{
		ExpenseID:        m.ExpenseID,
		Description:      m.Description,
		OriginalAmount:   m.OriginalAmount,
		OriginalCurrency: m.OriginalCurrency,
		ConvertedAmount:  m.ConvertedAmount,
		ExchangeRate:     m.ExchangeRate,
		State:            domain.ExpenseState(m.State),
		ClaimDate:        m.ClaimDate,
		OwnerID:          m.OwnerID,
		DepartmentID:     m.DepartmentID,
		CategoryID:       m.CategoryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.ReceiptStorageID != nil {
		d.Receipt = &domain.ReceiptRef{StorageID: *m.ReceiptStorageID}
		if m.ReceiptURL != nil {
			d.Receipt.URL = *m.ReceiptURL
		}
		if m.ReceiptDisplayName != nil {
			d.Receipt.DisplayName = *m.ReceiptDisplayName
		}
	}
	if m.Analyzed || m.Confidence != nil {
		d.Extraction = &domain.ExtractionInfo{Analyzed: m.Analyzed}
		if m.Confidence != nil {
			d.Extraction.Confidence = *m.Confidence
		}
	}
	return d
}

// ToDomainExpenseSlice converts a slice of model Expenses.
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
