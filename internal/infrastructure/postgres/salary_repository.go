package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var _ repository.SalaryRepository = (*SalaryRepo)(nil)

const salaryColumns = `s.id, s.employee_id, s.base_salary, s.bonus, s.deductions, s.currency,
	s.created_at, s.updated_at, e.first_name, e.last_name, e.position`

// SalaryRepo nómina sobre PostgreSQL. Los importes viajan como NUMERIC vía pgx-shopspring-decimal.
type SalaryRepo struct {
	db Querier
}

// NewSalaryRepository construye el adaptador de persistencia para nómina.
func NewSalaryRepository(db Querier) *SalaryRepo {
	return &SalaryRepo{db: db}
}

// Upsert crea o reemplaza la línea del empleado; conserva id y created_at si ya existía.
func (r *SalaryRepo) Upsert(ctx context.Context, s *entity.Salary) (*entity.Salary, error) {
	query := `
		WITH s AS (
			INSERT INTO salaries AS t (id, employee_id, base_salary, bonus, deductions, currency, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (employee_id) DO UPDATE SET
				base_salary = EXCLUDED.base_salary,
				bonus       = EXCLUDED.bonus,
				deductions  = EXCLUDED.deductions,
				currency    = EXCLUDED.currency,
				updated_at  = EXCLUDED.updated_at
			RETURNING *
		)
		SELECT ` + salaryColumns + `
		FROM s JOIN employees e ON e.id = s.employee_id`
	out, err := scanSalary(r.db.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.BaseSalary, s.Bonus, s.Deductions, s.Currency, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("upsert salary: %w", err)
	}
	return out, nil
}

// GetByEmployeeID línea de nómina del empleado.
func (r *SalaryRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries s JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1`
	out, err := scanSalary(r.db.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salary: %w", err)
	}
	return out, nil
}

// List ordenado por apellido.
func (r *SalaryRepo) List(ctx context.Context) ([]*entity.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries s JOIN employees e ON e.id = s.employee_id
		ORDER BY e.last_name, s.employee_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Salary, 0)
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSalary(row pgxScanner) (*entity.Salary, error) {
	var s entity.Salary
	var sum entity.EmployeeSummary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.BaseSalary, &s.Bonus, &s.Deductions, &s.Currency,
		&s.CreatedAt, &s.UpdatedAt, &sum.FirstName, &sum.LastName, &sum.Position,
	)
	if err != nil {
		return nil, err
	}
	sum.ID = s.EmployeeID
	s.Employee = &sum
	return &s, nil
}
