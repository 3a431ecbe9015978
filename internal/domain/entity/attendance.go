package entity

import (
	"strings"
	"time"
)

// AttendanceStatus estado del día de un empleado.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// ParseAttendanceStatus normaliza s a un estado conocido.
func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	switch st := AttendanceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return st, true
	default:
		return "", false
	}
}

// StatusForCheckIn deriva el estado de un check-in: LATE si la hora local es >= lateHour.
func StatusForCheckIn(localCheckIn time.Time, lateHour int) AttendanceStatus {
	if localCheckIn.Hour() >= lateHour {
		return AttendanceLate
	}
	return AttendancePresent
}

// AttendanceRecord un registro por (EmployeeID, Date).
//
// CheckOut puede quedar antes de CheckIn si un upsert administrativo lo asigna así;
// no se valida el orden.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       Date
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     AttendanceStatus
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *EmployeeSummary // solo lectura, completado en consultas
}

// CheckedOut indica si el registro ya tiene salida.
func (r *AttendanceRecord) CheckedOut() bool {
	return r.CheckOut != nil
}

// AttendancePatch campos de un upsert administrativo. nil = no modificar
// (o valor por defecto al crear).
type AttendancePatch struct {
	EmployeeID string
	Date       Date
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     *AttendanceStatus
	Notes      *string
}

// Apply mezcla el patch sobre r. Solo los campos presentes sobrescriben.
func (p AttendancePatch) Apply(r *AttendanceRecord) {
	if p.CheckIn != nil {
		v := *p.CheckIn
		r.CheckIn = &v
	}
	if p.CheckOut != nil {
		v := *p.CheckOut
		r.CheckOut = &v
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Notes != nil {
		v := *p.Notes
		r.Notes = &v
	}
}

// AttendanceFilter criterios de consulta. Date exacta tiene prioridad sobre el rango From/To.
type AttendanceFilter struct {
	EmployeeID string
	Date       *Date
	From       *Date
	To         *Date
}

// Matches evalúa el filtro en memoria.
func (f AttendanceFilter) Matches(r *AttendanceRecord) bool {
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Date != nil {
		return r.Date == *f.Date
	}
	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && r.Date.After(*f.To) {
		return false
	}
	return true
}
