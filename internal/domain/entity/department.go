package entity

import "time"

// Department área organizativa. ManagerID apunta a un Employee (opcional).
type Department struct {
	ID          string
	Name        string
	Description string
	ManagerID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DepartmentHeadcount nombre del departamento y cantidad de empleados asignados.
type DepartmentHeadcount struct {
	DepartmentID string
	Name         string
	Count        int
}
