package pgsql

import (
	"context"
	"fmt"

	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	"github.com/expensio/expensio_backend/internal/models"
	"github.com/expensio/expensio_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Ensure AuditRepository implements ports.AuditRepository
var _ portsrepo.AuditRepository = (*AuditRepository)(nil)

// AppendAuditEntry inserts one row. There is deliberately no update or delete
// counterpart; the table is append-only.
func (r *AuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
        INSERT INTO expense_audit (audit_id, expense_id, previous_state, new_state, actor_id, actor_role, comment, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.AuditID, m.ExpenseID, m.PreviousState, m.NewState, m.ActorID, m.ActorRole, m.Comment, m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindAuditByExpenseID(ctx context.Context, expenseID string) ([]domain.AuditEntry, error) {
	query := `
        SELECT audit_id, expense_id, previous_state, new_state, actor_id, actor_role, comment, occurred_at
        FROM expense_audit
        WHERE expense_id = $1
        ORDER BY occurred_at ASC, audit_id ASC;
    `
	rows, err := r.db.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		err := rows.Scan(
			&m.AuditID, &m.ExpenseID, &m.PreviousState, &m.NewState,
			&m.ActorID, &m.ActorRole, &m.Comment, &m.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return mapping.ToDomainAuditEntrySlice(entries), nil
}
