package dto

import "time"

// CreateLeaveRequest solicitud de permiso. EmployeeID vacío = empleado del token.
type CreateLeaveRequest struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

// UpdateLeaveStatusRequest aprobación o rechazo.
type UpdateLeaveStatusRequest struct {
	Status string `json:"status"`
}

// LeaveResponse salida de una solicitud de permiso.
type LeaveResponse struct {
	ID         string                   `json:"id"`
	EmployeeID string                   `json:"employeeId"`
	LeaveType  string                   `json:"leaveType"`
	StartDate  string                   `json:"startDate"`
	EndDate    string                   `json:"endDate"`
	Days       int                      `json:"days"`
	Reason     string                   `json:"reason"`
	Status     string                   `json:"status"`
	Employee   *EmployeeSummaryResponse `json:"employee,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}
