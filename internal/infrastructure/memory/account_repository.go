package memory

import (
	"context"

	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo cuentas en memoria.
type AccountRepo struct {
	s    *Store
	inTx bool
}

// Create persiste una cuenta nueva; email y employeeID son únicos.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	defer r.s.lock(r.inTx)()
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return domain.ErrEmailAlreadyExists
		}
		if a.EmployeeID != nil && existing.EmployeeID != nil && *existing.EmployeeID == *a.EmployeeID {
			return domain.ErrDuplicate
		}
	}
	if a.EmployeeID != nil {
		if _, ok := r.s.employees[*a.EmployeeID]; !ok {
			return domain.ErrEmployeeNotFound
		}
	}
	stored := *a
	stored.EmployeeID = cloneString(a.EmployeeID)
	r.s.accounts[a.ID] = stored
	return nil
}

// GetByID obtiene una cuenta por ID; (nil, nil) si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	defer r.s.rlock(r.inTx)()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// GetByEmail obtiene una cuenta por email; (nil, nil) si no existe.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	defer r.s.rlock(r.inTx)()
	for _, a := range r.s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

// GetByEmployeeID obtiene la cuenta vinculada a un empleado; (nil, nil) si no tiene.
func (r *AccountRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Account, error) {
	defer r.s.rlock(r.inTx)()
	for _, a := range r.s.accounts {
		if a.EmployeeID != nil && *a.EmployeeID == employeeID {
			return &a, nil
		}
	}
	return nil, nil
}
