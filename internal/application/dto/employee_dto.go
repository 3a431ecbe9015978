package dto

import "time"

// CreateEmployeeRequest alta de empleado por RR. HH. (no crea cuenta de acceso).
type CreateEmployeeRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Position     string  `json:"position"`
	HireDate     string  `json:"hireDate"`
	Address      string  `json:"address"`
	DepartmentID *string `json:"departmentId"`
	Status       string  `json:"status"`
}

// UpdateEmployeeRequest campos opcionales; nil = no modificar. DepartmentID "" desvincula.
type UpdateEmployeeRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Position     *string `json:"position"`
	HireDate     *string `json:"hireDate"`
	Address      *string `json:"address"`
	DepartmentID *string `json:"departmentId"`
	Status       *string `json:"status"`
}

// EmployeeResponse ficha del empleado.
type EmployeeResponse struct {
	ID           string              `json:"id"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Position     string              `json:"position"`
	HireDate     string              `json:"hireDate"`
	Address      string              `json:"address"`
	DepartmentID *string             `json:"departmentId"`
	Department   *DepartmentResponse `json:"department,omitempty"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// EmployeeSummaryResponse referencia liviana usada dentro de otros recursos.
type EmployeeSummaryResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position,omitempty"`
}
