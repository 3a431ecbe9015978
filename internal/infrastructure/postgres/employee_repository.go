package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeSelect = `
	SELECT e.id, e.first_name, e.last_name, e.email, e.phone, e.position, e.hire_date, e.address,
	       e.department_id::text, e.status, e.created_at, e.updated_at,
	       d.id::text, d.name, d.description, d.manager_id::text, d.created_at, d.updated_at
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	db Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(db Querier) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, first_name, last_name, email, phone, position, hire_date, address,
		                       department_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Position, dateArg(e.HireDate), e.Address,
		e.DepartmentID, string(e.Status), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrDepartmentNotFound
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado con su departamento.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// Update actualiza la ficha completa.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees SET first_name = $2, last_name = $3, email = $4, phone = $5, position = $6,
		       hire_date = $7, address = $8, department_id = $9, status = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Position, dateArg(e.HireDate), e.Address,
		e.DepartmentID, string(e.Status), e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrDepartmentNotFound
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// List filtra por estado y departamento, ordenado por apellido.
func (r *EmployeeRepo) List(ctx context.Context, f entity.EmployeeFilter) ([]*entity.Employee, error) {
	var conds []string
	var args []any
	if f.Status != nil {
		args = append(args, string(*f.Status))
		conds = append(conds, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if f.DepartmentID != "" {
		args = append(args, f.DepartmentID)
		conds = append(conds, fmt.Sprintf("e.department_id = $%d", len(args)))
	}
	query := employeeSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY lower(e.last_name), e.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina el empleado. Cuenta, asistencia, permisos y nómina caen por ON DELETE CASCADE.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Count cuenta empleados, opcionalmente por estado.
func (r *EmployeeRepo) Count(ctx context.Context, status *entity.EmployeeStatus) (int, error) {
	var n int
	var err error
	if status == nil {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = $1`, string(*status)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// CountHiredSince contrataciones con hire_date >= since.
func (r *EmployeeRepo) CountHiredSince(ctx context.Context, since entity.Date) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE hire_date >= $1`, dateArg(since)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hires: %w", err)
	}
	return n, nil
}

func scanEmployee(row pgxScanner) (*entity.Employee, error) {
	var e entity.Employee
	var hire time.Time
	var status string
	var (
		deptID, deptName, deptDesc, deptManager *string
		deptCreated, deptUpdated                *time.Time
	)
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &hire, &e.Address,
		&e.DepartmentID, &status, &e.CreatedAt, &e.UpdatedAt,
		&deptID, &deptName, &deptDesc, &deptManager, &deptCreated, &deptUpdated,
	)
	if err != nil {
		return nil, err
	}
	e.HireDate = entity.DateFromTime(hire)
	e.Status = entity.EmployeeStatus(status)
	if deptID != nil {
		e.Department = &entity.Department{
			ID:          *deptID,
			Name:        deref(deptName),
			Description: deref(deptDesc),
			ManagerID:   deptManager,
		}
		if deptCreated != nil {
			e.Department.CreatedAt = *deptCreated
		}
		if deptUpdated != nil {
			e.Department.UpdatedAt = *deptUpdated
		}
	}
	return &e, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
