package entity

import (
	"strings"
	"time"
)

// EmployeeStatus situación laboral del empleado.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"
	EmployeeOnLeave  EmployeeStatus = "ON_LEAVE"
)

// ParseEmployeeStatus normaliza s a un estado conocido.
func ParseEmployeeStatus(s string) (EmployeeStatus, bool) {
	switch st := EmployeeStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case EmployeeActive, EmployeeInactive, EmployeeOnLeave:
		return st, true
	default:
		return "", false
	}
}

// Employee ficha del empleado. Para el ledger de asistencia solo importa su ID.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Position     string
	HireDate     Date
	Address      string
	DepartmentID *string
	Status       EmployeeStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Department *Department // opcional, completado en lecturas de detalle
}

// FullName nombre para mostrar.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Summary proyección mínima usada en listados de asistencia, permisos y nómina.
func (e *Employee) Summary() *EmployeeSummary {
	return &EmployeeSummary{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, Position: e.Position}
}

// EmployeeSummary referencia liviana a un empleado.
type EmployeeSummary struct {
	ID        string
	FirstName string
	LastName  string
	Position  string
}

// EmployeeFilter criterios de listado.
type EmployeeFilter struct {
	Status       *EmployeeStatus
	DepartmentID string
}
