package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	"github.com/expensio/expensio_backend/internal/models"
	"github.com/expensio/expensio_backend/internal/utils/mapping"
	"github.com/expensio/expensio_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `
	expense_id, description, original_amount, original_currency, converted_amount,
	exchange_rate, state, claim_date, owner_id, department_id, category_id,
	receipt_storage_id, receipt_url, receipt_display_name, analyzed, confidence,
	created_at, created_by, last_updated_at, last_updated_by`

type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Ensure ExpenseRepository implements the repository facade
var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Description,
		&m.OriginalAmount,
		&m.OriginalCurrency,
		&m.ConvertedAmount,
		&m.ExchangeRate,
		&m.State,
		&m.ClaimDate,
		&m.OwnerID,
		&m.DepartmentID,
		&m.CategoryID,
		&m.ReceiptStorageID,
		&m.ReceiptURL,
		&m.ReceiptDisplayName,
		&m.Analyzed,
		&m.Confidence,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (` + expenseColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
    `
	_, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.Description, m.OriginalAmount, m.OriginalCurrency, m.ConvertedAmount,
		m.ExchangeRate, m.State, m.ClaimDate, m.OwnerID, m.DepartmentID, m.CategoryID,
		m.ReceiptStorageID, m.ReceiptURL, m.ReceiptDisplayName, m.Analyzed, m.Confidence,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.db.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	expense := mapping.ToDomainExpense(*m)
	return &expense, nil
}

// ListExpensesByOwners pages through expenses newest first using a
// (created_at, expense_id) cursor. A nil ownerIDs slice means no owner
// restriction.
func (r *ExpenseRepository) ListExpensesByOwners(ctx context.Context, ownerIDs []string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []any{}
	argPos := 1

	if ownerIDs != nil {
		query += fmt.Sprintf(" AND owner_id = ANY($%d)", argPos)
		args = append(args, ownerIDs)
		argPos++
	}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursorToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (created_at, expense_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, cursorTime, cursorID)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, expense_id DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	var newToken *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.ExpenseID)
		newToken = &token
	}
	return mapping.ToDomainExpenseSlice(expenses), newToken, nil
}

func (r *ExpenseRepository) ListExpensesBetween(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE claim_date >= $1 AND claim_date < $2;`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by claim date: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}

func (r *ExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses SET
            description = $2,
            original_amount = $3,
            original_currency = $4,
            converted_amount = $5,
            exchange_rate = $6,
            claim_date = $7,
            category_id = $8,
            receipt_storage_id = $9,
            receipt_url = $10,
            receipt_display_name = $11,
            last_updated_at = $12,
            last_updated_by = $13
        WHERE expense_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.Description, m.OriginalAmount, m.OriginalCurrency, m.ConvertedAmount,
		m.ExchangeRate, m.ClaimDate, m.CategoryID,
		m.ReceiptStorageID, m.ReceiptURL, m.ReceiptDisplayName,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateExpenseState applies the transition as a compare-and-swap on the state
// column. Zero rows affected means either the expense is gone or another
// transition won; the two are told apart with a follow-up existence check.
func (r *ExpenseRepository) UpdateExpenseState(ctx context.Context, expenseID string, fromState, toState domain.ExpenseState, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE expenses SET
            state = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE expense_id = $1 AND state = $2;
    `
	tag, err := r.db.Exec(ctx, query, expenseID, string(fromState), string(toState), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update expense state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM expenses WHERE expense_id = $1);`, expenseID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check expense existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("expense %s is no longer %s: %w", expenseID, fromState, apperrors.ErrInvalidTransition)
	}
	return nil
}

func (r *ExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return nil
}
