package repository

import (
	"context"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// SalaryRepository define el puerto de persistencia de nómina (una línea por empleado).
type SalaryRepository interface {
	// Upsert crea o reemplaza la línea del empleado; devuelve la versión persistida.
	Upsert(ctx context.Context, s *entity.Salary) (*entity.Salary, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Salary, error)
	// List ordena por apellido del empleado.
	List(ctx context.Context) ([]*entity.Salary, error)
}
