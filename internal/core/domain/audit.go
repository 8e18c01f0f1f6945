package domain

import "time"

// AuditEntry is one immutable record in the append-only trail of expense
// state transitions. Entries are created exactly once per applied transition
// and are never updated or deleted.
type AuditEntry struct {
	AuditID       string       `json:"auditID"` // Primary Key (e.g., UUID)
	ExpenseID     string       `json:"expenseID"`
	PreviousState ExpenseState `json:"previousState"`
	NewState      ExpenseState `json:"newState"`
	ActorID       string       `json:"actorID"`
	ActorRole     UserRole     `json:"actorRole"`
	Comment       string       `json:"comment,omitempty"` // Mandatory when NewState is REJECTED
	OccurredAt    time.Time    `json:"occurredAt"`
}
