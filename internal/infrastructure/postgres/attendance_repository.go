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

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.notes,
	a.created_at, a.updated_at, e.first_name, e.last_name, e.position`

// AttendanceRepo ledger de asistencia sobre PostgreSQL. La unicidad (employee_id, date) la
// impone attendances_employee_date_key; cada escritura es una sola sentencia.
type AttendanceRepo struct {
	db Querier
}

// NewAttendanceRepository construye el adaptador del ledger.
func NewAttendanceRepository(db Querier) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Create inserta el registro. Si ya existe uno para (employee_id, date) no lo toca.
func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendances (id, employee_id, date, check_in, check_out, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.EmployeeID, dateArg(rec.Date), rec.CheckIn, rec.CheckOut, string(rec.Status), rec.Notes,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrAlreadyCheckedIn
		case isForeignKeyViolation(err):
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// SetCheckOut asigna la salida en el mismo UPDATE que localiza el registro.
func (r *AttendanceRepo) SetCheckOut(ctx context.Context, employeeID string, date entity.Date, checkOut time.Time) (*entity.AttendanceRecord, error) {
	query := `
		WITH a AS (
			UPDATE attendances SET check_out = $3, updated_at = $3
			WHERE employee_id = $1 AND date = $2
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a JOIN employees e ON e.id = a.employee_id`
	rec, err := scanAttendance(r.db.QueryRow(ctx, query, employeeID, dateArg(date), checkOut))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set check-out: %w", err)
	}
	return rec, nil
}

// Upsert INSERT ... ON CONFLICT: los campos NULL del patch conservan el valor existente.
func (r *AttendanceRepo) Upsert(ctx context.Context, newID string, patch entity.AttendancePatch, defaultStatus entity.AttendanceStatus, now time.Time) (*entity.AttendanceRecord, error) {
	query := `
		WITH a AS (
			INSERT INTO attendances AS t (id, employee_id, date, check_in, check_out, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4::timestamptz, $5::timestamptz, COALESCE($6::text, $7::text), $8::text, $9, $9)
			ON CONFLICT (employee_id, date) DO UPDATE SET
				check_in   = COALESCE($4::timestamptz, t.check_in),
				check_out  = COALESCE($5::timestamptz, t.check_out),
				status     = COALESCE($6::text, t.status),
				notes      = COALESCE($8::text, t.notes),
				updated_at = $9
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a JOIN employees e ON e.id = a.employee_id`
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	rec, err := scanAttendance(r.db.QueryRow(ctx, query,
		newID, patch.EmployeeID, dateArg(patch.Date), patch.CheckIn, patch.CheckOut,
		status, string(defaultStatus), patch.Notes, now,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return rec, nil
}

// Get registro de (employeeID, date).
func (r *AttendanceRepo) Get(ctx context.Context, employeeID string, date entity.Date) (*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances a JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2`
	rec, err := scanAttendance(r.db.QueryRow(ctx, query, employeeID, dateArg(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return rec, nil
}

// Query filtra por empleado y fecha exacta o rango. Orden: fecha desc, entrada desc.
func (r *AttendanceRepo) Query(ctx context.Context, f entity.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.EmployeeID != "" {
		add("a.employee_id = $%d", f.EmployeeID)
	}
	if f.Date != nil {
		add("a.date = $%d", dateArg(*f.Date))
	} else {
		if f.From != nil {
			add("a.date >= $%d", dateArg(*f.From))
		}
		if f.To != nil {
			add("a.date <= $%d", dateArg(*f.To))
		}
	}
	query := `SELECT ` + attendanceColumns + ` FROM attendances a JOIN employees e ON e.id = a.employee_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.date DESC, a.check_in DESC NULLS LAST, a.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AttendanceRecord, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// CountPresent registros PRESENT o LATE en la fecha.
func (r *AttendanceRepo) CountPresent(ctx context.Context, date entity.Date) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE date = $1 AND status IN ('PRESENT', 'LATE')`,
		dateArg(date),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count present: %w", err)
	}
	return n, nil
}

func scanAttendance(row pgxScanner) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	var date time.Time
	var status string
	var sum entity.EmployeeSummary
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &date, &rec.CheckIn, &rec.CheckOut, &status, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &sum.FirstName, &sum.LastName, &sum.Position,
	)
	if err != nil {
		return nil, err
	}
	rec.Date = entity.DateFromTime(date)
	rec.Status = entity.AttendanceStatus(status)
	sum.ID = rec.EmployeeID
	rec.Employee = &sum
	return &rec, nil
}
