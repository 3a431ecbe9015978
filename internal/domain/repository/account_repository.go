package repository

import (
	"context"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Account, error)
}
