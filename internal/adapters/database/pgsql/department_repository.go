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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const departmentColumns = `
	department_id, name, monthly_budget, annual_budget,
	created_at, created_by, last_updated_at, last_updated_by`

type DepartmentRepository struct {
	db *pgxpool.Pool
}

func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Ensure DepartmentRepository implements ports.DepartmentRepository
var _ portsrepo.DepartmentRepository = (*DepartmentRepository)(nil)

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var m models.Department
	err := row.Scan(
		&m.DepartmentID, &m.Name, &m.MonthlyBudget, &m.AnnualBudget,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *DepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = $1;`
	m, err := scanDepartment(r.db.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("department %s: %w", departmentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find department by ID: %w", err)
	}
	department := mapping.ToDomainDepartment(*m)
	return &department, nil
}

func (r *DepartmentRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY name ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		m, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return mapping.ToDomainDepartmentSlice(departments), nil
}

func (r *DepartmentRepository) UpdateDepartmentBudget(ctx context.Context, departmentID string, monthly, annual decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE departments SET
            monthly_budget = $2,
            annual_budget = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE department_id = $1;
    `
	tag, err := r.db.Exec(ctx, query, departmentID, monthly, annual, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update department budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("department %s: %w", departmentID, apperrors.ErrNotFound)
	}
	return nil
}
