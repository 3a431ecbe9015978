package dto

import "time"

// CreateDepartmentRequest entrada para crear un departamento.
type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ManagerID   *string `json:"managerId"`
}

// UpdateDepartmentRequest campos opcionales. ManagerID "" quita el responsable.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *string `json:"managerId"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	ManagerID     *string                   `json:"managerId"`
	Manager       *EmployeeSummaryResponse  `json:"manager,omitempty"`
	EmployeeCount *int                      `json:"employeeCount,omitempty"`
	Employees     []EmployeeSummaryResponse `json:"employees,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}
