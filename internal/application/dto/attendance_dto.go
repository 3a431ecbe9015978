package dto

import "time"

// CheckRequest entrada de check-in / check-out. EmployeeID vacío = empleado del token.
type CheckRequest struct {
	EmployeeID string `json:"employeeId"`
}

// UpsertAttendanceRequest corrección administrativa de un registro. nil = no modificar.
type UpsertAttendanceRequest struct {
	EmployeeID string     `json:"employeeId"`
	Date       string     `json:"date"`
	CheckIn    *time.Time `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}

// AttendanceQuery parámetros de GET /api/attendance.
type AttendanceQuery struct {
	EmployeeID string `query:"employeeId"`
	Date       string `query:"date"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// AttendanceResponse registro del ledger con su empleado.
type AttendanceResponse struct {
	ID         string                   `json:"id"`
	EmployeeID string                   `json:"employeeId"`
	Date       string                   `json:"date"`
	CheckIn    *time.Time               `json:"checkIn"`
	CheckOut   *time.Time               `json:"checkOut"`
	Status     string                   `json:"status"`
	Notes      *string                  `json:"notes"`
	Employee   *EmployeeSummaryResponse `json:"employee,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}
