package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia del ledger de asistencia.
//
// La unicidad (EmployeeID, Date) la garantiza el almacenamiento: Create es atómico y devuelve
// domain.ErrAlreadyCheckedIn si ya existe un registro, sin modificarlo. Un empleado inexistente
// produce domain.ErrEmployeeNotFound en Create y Upsert.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *entity.AttendanceRecord) error
	// SetCheckOut asigna la salida del registro existente. Devuelve (nil, nil) si no existe.
	SetCheckOut(ctx context.Context, employeeID string, date entity.Date, checkOut time.Time) (*entity.AttendanceRecord, error)
	// Upsert crea el registro (con newID y defaultStatus si el patch no trae estado) o mezcla
	// los campos presentes del patch sobre el existente, en una sola operación.
	Upsert(ctx context.Context, newID string, patch entity.AttendancePatch, defaultStatus entity.AttendanceStatus, now time.Time) (*entity.AttendanceRecord, error)
	Get(ctx context.Context, employeeID string, date entity.Date) (*entity.AttendanceRecord, error)
	// Query ordena por fecha desc y luego por entrada desc.
	Query(ctx context.Context, f entity.AttendanceFilter) ([]*entity.AttendanceRecord, error)
	// CountPresent registros PRESENT o LATE en la fecha dada.
	CountPresent(ctx context.Context, date entity.Date) (int, error)
}
