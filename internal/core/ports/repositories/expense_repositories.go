package repositories

import (
	"context"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByOwners retrieves a paginated, creation-ordered list of expenses
	// belonging to the given owners. A nil ownerIDs slice means no owner restriction
	// (admin scope). Token-based pagination as elsewhere in the codebase.
	ListExpensesByOwners(ctx context.Context, ownerIDs []string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// ListExpensesBetween retrieves all expenses whose claim date falls in [from, to).
	// Used by the dashboard aggregation window; not paginated.
	ListExpensesBetween(ctx context.Context, from, to time.Time) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense updates mutable fields of a draft expense (not its state).
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpenseState transitions the expense state with a compare-and-swap:
	// the update applies only if the stored state still equals fromState.
	// Returns apperrors.ErrInvalidTransition when the precondition no longer
	// holds (including lost races) and apperrors.ErrNotFound for unknown IDs.
	UpdateExpenseState(ctx context.Context, expenseID string, fromState, toState domain.ExpenseState, updatedBy string, updatedAt time.Time) error

	// DeleteExpense removes an expense. Only drafts are ever deleted; the
	// service layer enforces that precondition.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
