package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense, scope-checked against the actor.
	GetExpenseByID(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error)

	// ListExpenses retrieves the actor's role-scoped expenses with the given
	// filter applied. The scope cannot be widened by filter parameters.
	ListExpenses(ctx context.Context, actorID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)

	// GetExpenseHistory returns the ordered audit trail for an expense.
	GetExpenseHistory(ctx context.Context, expenseID string, actorID string) ([]domain.AuditEntry, error)
}

// ExpenseWriterSvc defines creation and draft-editing operations
type ExpenseWriterSvc interface {
	// CreateExpense creates a new draft expense for the actor, resolving the
	// converted amount through the currency converter collaborator.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error)

	// UpdateExpense edits a draft owned by the actor.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error)

	// DeleteExpense removes a draft owned by the actor.
	DeleteExpense(ctx context.Context, expenseID string, actorID string) error
}

// ExpenseLifecycleSvc defines the state machine transitions. Every operation
// takes the acting user explicitly; there is no ambient session state.
type ExpenseLifecycleSvc interface {
	// SubmitExpense moves an owned draft to PENDING_APPROVAL.
	SubmitExpense(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error)

	// ResubmitExpense moves an owned rejected expense back to PENDING_APPROVAL.
	ResubmitExpense(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error)

	// ApproveExpense moves a pending expense to APPROVED. Actor must be an
	// admin or the owner's manager.
	ApproveExpense(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error)

	// RejectExpense moves a pending expense to REJECTED with a mandatory comment.
	RejectExpense(ctx context.Context, expenseID string, actorID string, comment string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	ExpenseLifecycleSvc
}
