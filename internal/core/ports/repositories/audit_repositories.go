package repositories

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
)

// AuditRepository is the append-only log of expense state transitions.
// Entries are never updated or deleted.
type AuditRepository interface {
	// AppendAuditEntry records one transition. Called exactly once per
	// successfully applied state change.
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// FindAuditByExpenseID returns the trail for one expense ordered by
	// occurrence time ascending. An expense with no recorded transitions
	// yields an empty slice, not an error.
	FindAuditByExpenseID(ctx context.Context, expenseID string) ([]domain.AuditEntry, error)
}
