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

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

const departmentColumns = `id, name, description, manager_id::text, created_at, updated_at`

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	db Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para departamentos.
func NewDepartmentRepository(db Querier) *DepartmentRepo {
	return &DepartmentRepo{db: db}
}

// Create persiste un departamento.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	query := `
		INSERT INTO departments (id, name, description, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, d.ID, d.Name, d.Description, d.ManagerID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return mapDepartmentError("insert department", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	d, err := scanDepartment(r.db.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

// Update actualiza nombre, descripción y responsable.
func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	query := `
		UPDATE departments SET name = $2, description = $3, manager_id = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, d.ID, d.Name, d.Description, d.ManagerID, d.UpdatedAt)
	if err != nil {
		return mapDepartmentError("update department", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

// List ordenado por nombre.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete elimina un departamento. La FK de employees pasa a NULL.
func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

// Headcount empleados por departamento.
func (r *DepartmentRepo) Headcount(ctx context.Context) ([]entity.DepartmentHeadcount, error) {
	query := `
		SELECT d.id, d.name, COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("department headcount: %w", err)
	}
	defer rows.Close()
	out := make([]entity.DepartmentHeadcount, 0)
	for rows.Next() {
		var h entity.DepartmentHeadcount
		if err := rows.Scan(&h.DepartmentID, &h.Name, &h.Count); err != nil {
			return nil, fmt.Errorf("scan headcount: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ClearManager desvincula al empleado de los departamentos que dirige.
func (r *DepartmentRepo) ClearManager(ctx context.Context, employeeID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE departments SET manager_id = NULL, updated_at = now() WHERE manager_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("clear department manager: %w", err)
	}
	return nil
}

func mapDepartmentError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrEmployeeNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanDepartment(row pgxScanner) (*entity.Department, error) {
	var d entity.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
