package repository

import (
	"context"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// DepartmentRepository define el puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(ctx context.Context, d *entity.Department) error
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	Update(ctx context.Context, d *entity.Department) error
	List(ctx context.Context) ([]*entity.Department, error)
	Delete(ctx context.Context, id string) error
	// Headcount cantidad de empleados por departamento, ordenado por nombre.
	Headcount(ctx context.Context) ([]entity.DepartmentHeadcount, error)
	// ClearManager desvincula al empleado de los departamentos que dirige.
	ClearManager(ctx context.Context, employeeID string) error
}
