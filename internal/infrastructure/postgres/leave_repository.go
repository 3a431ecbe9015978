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

var _ repository.LeaveRepository = (*LeaveRepo)(nil)

const leaveSelect = `
	SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status,
	       l.created_at, l.updated_at, e.first_name, e.last_name, e.position
	FROM leave_requests l
	JOIN employees e ON e.id = l.employee_id`

// LeaveRepo implementación del puerto LeaveRepository sobre PostgreSQL.
type LeaveRepo struct {
	db Querier
}

// NewLeaveRepository construye el adaptador de persistencia para permisos.
func NewLeaveRepository(db Querier) *LeaveRepo {
	return &LeaveRepo{db: db}
}

// Create persiste una solicitud.
func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.EmployeeID, string(l.LeaveType), dateArg(l.StartDate), dateArg(l.EndDate), l.Reason,
		string(l.Status), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("insert leave request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud con su empleado.
func (r *LeaveRepo) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	l, err := scanLeave(r.db.QueryRow(ctx, leaveSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return l, nil
}

// List filtra por estado y empleado, más recientes primero.
func (r *LeaveRepo) List(ctx context.Context, f entity.LeaveFilter) ([]*entity.LeaveRequest, error) {
	var conds []string
	var args []any
	if f.Status != nil {
		args = append(args, string(*f.Status))
		conds = append(conds, fmt.Sprintf("l.status = $%d", len(args)))
	}
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		conds = append(conds, fmt.Sprintf("l.employee_id = $%d", len(args)))
	}
	query := leaveSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY l.created_at DESC, l.id"
	return r.list(ctx, query, args...)
}

// UpdateStatus cambia el estado y devuelve la solicitud actualizada.
func (r *LeaveRepo) UpdateStatus(ctx context.Context, id string, status entity.LeaveStatus) (*entity.LeaveRequest, error) {
	query := `
		WITH l AS (
			UPDATE leave_requests SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status,
		       l.created_at, l.updated_at, e.first_name, e.last_name, e.position
		FROM l JOIN employees e ON e.id = l.employee_id`
	l, err := scanLeave(r.db.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update leave status: %w", err)
	}
	return l, nil
}

// Delete elimina una solicitud.
func (r *LeaveRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus cuenta solicitudes en un estado.
func (r *LeaveRepo) CountByStatus(ctx context.Context, status entity.LeaveStatus) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leave requests: %w", err)
	}
	return n, nil
}

// Recent últimas solicitudes creadas.
func (r *LeaveRepo) Recent(ctx context.Context, limit int) ([]*entity.LeaveRequest, error) {
	return r.list(ctx, leaveSelect+` ORDER BY l.created_at DESC, l.id LIMIT $1`, limit)
}

func (r *LeaveRepo) list(ctx context.Context, query string, args ...any) ([]*entity.LeaveRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.LeaveRequest, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLeave(row pgxScanner) (*entity.LeaveRequest, error) {
	var l entity.LeaveRequest
	var start, end time.Time
	var leaveType, status string
	var sum entity.EmployeeSummary
	err := row.Scan(
		&l.ID, &l.EmployeeID, &leaveType, &start, &end, &l.Reason, &status,
		&l.CreatedAt, &l.UpdatedAt, &sum.FirstName, &sum.LastName, &sum.Position,
	)
	if err != nil {
		return nil, err
	}
	l.LeaveType = entity.LeaveType(leaveType)
	l.Status = entity.LeaveStatus(status)
	l.StartDate = entity.DateFromTime(start)
	l.EndDate = entity.DateFromTime(end)
	sum.ID = l.EmployeeID
	l.Employee = &sum
	return &l, nil
}
