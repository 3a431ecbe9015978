package repository

import (
	"context"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Delete elimina en cascada la cuenta, la asistencia, los permisos y la nómina del empleado.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	List(ctx context.Context, f entity.EmployeeFilter) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status *entity.EmployeeStatus) (int, error)
	CountHiredSince(ctx context.Context, since entity.Date) (int, error)
}
