package entity

import (
	"strings"
	"time"
)

// LeaveType tipo de ausencia solicitada.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeavePersonal  LeaveType = "PERSONAL"
	LeaveMaternity LeaveType = "MATERNITY"
	LeavePaternity LeaveType = "PATERNITY"
	LeaveUnpaid    LeaveType = "UNPAID"
)

// ParseLeaveType normaliza s a un tipo conocido.
func ParseLeaveType(s string) (LeaveType, bool) {
	switch lt := LeaveType(strings.ToUpper(strings.TrimSpace(s))); lt {
	case LeaveAnnual, LeaveSick, LeavePersonal, LeaveMaternity, LeavePaternity, LeaveUnpaid:
		return lt, true
	default:
		return "", false
	}
}

// LeaveStatus estado de aprobación.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// ParseLeaveStatus normaliza s a un estado conocido.
func ParseLeaveStatus(s string) (LeaveStatus, bool) {
	switch st := LeaveStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case LeavePending, LeaveApproved, LeaveRejected:
		return st, true
	default:
		return "", false
	}
}

// LeaveRequest solicitud de ausencia de un empleado.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  Date
	EndDate    Date
	Reason     string
	Status     LeaveStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *EmployeeSummary
}

// Days cantidad de días calendario cubiertos, ambos extremos incluidos.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Midnight(time.UTC).Sub(l.StartDate.Midnight(time.UTC)).Hours()/24) + 1
}

// LeaveFilter criterios de listado.
type LeaveFilter struct {
	Status     *LeaveStatus
	EmployeeID string
}
