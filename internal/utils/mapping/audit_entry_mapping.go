package mapping

import (
	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry.
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:       d.AuditID,
		ExpenseID:     d.ExpenseID,
		PreviousState: string(d.PreviousState),
		NewState:      string(d.NewState),
		ActorID:       d.ActorID,
		ActorRole:     string(d.ActorRole),
		Comment:       d.Comment,
		OccurredAt:    d.OccurredAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry.
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:       m.AuditID,
		ExpenseID:     m.ExpenseID,
		PreviousState: domain.ExpenseState(m.PreviousState),
		NewState:      domain.ExpenseState(m.NewState),
		ActorID:       m.ActorID,
		ActorRole:     domain.UserRole(m.ActorRole),
		Comment:       m.Comment,
		OccurredAt:    m.OccurredAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model AuditEntries.
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
