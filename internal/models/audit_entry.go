package models

import "time"

// AuditEntry represents one row in the append-only expense audit log.
type AuditEntry struct {
	AuditID       string    `db:"audit_id"`
	ExpenseID     string    `db:"expense_id"`
	PreviousState string    `db:"previous_state"`
	NewState      string    `db:"new_state"`
	ActorID       string    `db:"actor_id"`
	ActorRole     string    `db:"actor_role"`
	Comment       string    `db:"comment"`
	OccurredAt    time.Time `db:"occurred_at"`
}
