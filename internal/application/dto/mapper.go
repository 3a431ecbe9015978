package dto

import "github.com/jhoicas/hr-erp-api/internal/domain/entity"

// FromAccount arma la respuesta de cuenta; employee puede ser nil.
func FromAccount(a *entity.Account, employee *entity.Employee) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Role:      string(a.Role),
		Employee:  FromEmployee(employee),
		CreatedAt: a.CreatedAt,
	}
}

// FromEmployee nil-safe.
func FromEmployee(e *entity.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	return &EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		Position:     e.Position,
		HireDate:     e.HireDate.String(),
		Address:      e.Address,
		DepartmentID: e.DepartmentID,
		Department:   FromDepartment(e.Department),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func fromSummary(s *entity.EmployeeSummary) *EmployeeSummaryResponse {
	if s == nil {
		return nil
	}
	return &EmployeeSummaryResponse{ID: s.ID, FirstName: s.FirstName, LastName: s.LastName, Position: s.Position}
}

// FromDepartment nil-safe; no completa Manager ni EmployeeCount.
func FromDepartment(d *entity.Department) *DepartmentResponse {
	if d == nil {
		return nil
	}
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// FromAttendance registro del ledger.
func FromAttendance(r *entity.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.String(),
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Status:     string(r.Status),
		Notes:      r.Notes,
		Employee:   fromSummary(r.Employee),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromAttendanceList mantiene el orden recibido.
func FromAttendanceList(list []*entity.AttendanceRecord) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromAttendance(r))
	}
	return out
}

// FromLeave solicitud de permiso.
func FromLeave(l *entity.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveType:  string(l.LeaveType),
		StartDate:  l.StartDate.String(),
		EndDate:    l.EndDate.String(),
		Days:       l.Days(),
		Reason:     l.Reason,
		Status:     string(l.Status),
		Employee:   fromSummary(l.Employee),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// FromLeaveList mantiene el orden recibido.
func FromLeaveList(list []*entity.LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for _, l := range list {
		out = append(out, FromLeave(l))
	}
	return out
}

// FromSalary línea de nómina con neto.
func FromSalary(s *entity.Salary) SalaryResponse {
	return SalaryResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		BaseSalary: s.BaseSalary,
		Bonus:      s.Bonus,
		Deductions: s.Deductions,
		NetSalary:  s.Net(),
		Currency:   s.Currency,
		Employee:   fromSummary(s.Employee),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
