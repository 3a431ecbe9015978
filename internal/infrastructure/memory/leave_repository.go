package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var (
	_ repository.LeaveRepository  = (*LeaveRepo)(nil)
	_ repository.SalaryRepository = (*SalaryRepo)(nil)
)

// LeaveRepo solicitudes de permiso en memoria.
type LeaveRepo struct {
	s    *Store
	inTx bool
}

// Create persiste una solicitud; el empleado debe existir.
func (r *LeaveRepo) Create(ctx context.Context, l *entity.LeaveRequest) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.employees[l.EmployeeID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	stored := *l
	stored.Employee = nil
	r.s.leaves[l.ID] = stored
	return nil
}

// GetByID obtiene una solicitud; (nil, nil) si no existe.
func (r *LeaveRepo) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	defer r.s.rlock(r.inTx)()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, nil
	}
	return r.withEmployee(l), nil
}

// List filtra por estado y empleado, más recientes primero.
func (r *LeaveRepo) List(ctx context.Context, f entity.LeaveFilter) ([]*entity.LeaveRequest, error) {
	defer r.s.rlock(r.inTx)()
	list := make([]*entity.LeaveRequest, 0)
	for _, l := range r.s.leaves {
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.EmployeeID != "" && l.EmployeeID != f.EmployeeID {
			continue
		}
		list = append(list, r.withEmployee(l))
	}
	sortNewestFirst(list)
	return list, nil
}

// UpdateStatus cambia el estado; (nil, nil) si la solicitud no existe.
func (r *LeaveRepo) UpdateStatus(ctx context.Context, id string, status entity.LeaveStatus) (*entity.LeaveRequest, error) {
	defer r.s.lock(r.inTx)()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, nil
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	r.s.leaves[id] = l
	return r.withEmployee(l), nil
}

// Delete elimina una solicitud.
func (r *LeaveRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.leaves[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.leaves, id)
	return nil
}

// CountByStatus cuenta solicitudes en un estado.
func (r *LeaveRepo) CountByStatus(ctx context.Context, status entity.LeaveStatus) (int, error) {
	defer r.s.rlock(r.inTx)()
	n := 0
	for _, l := range r.s.leaves {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

// Recent últimas solicitudes creadas.
func (r *LeaveRepo) Recent(ctx context.Context, limit int) ([]*entity.LeaveRequest, error) {
	list, err := r.List(ctx, entity.LeaveFilter{})
	if err != nil {
		return nil, err
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *LeaveRepo) withEmployee(l entity.LeaveRequest) *entity.LeaveRequest {
	if e, ok := r.s.employees[l.EmployeeID]; ok {
		l.Employee = e.Summary()
	}
	return &l
}

func sortNewestFirst(list []*entity.LeaveRequest) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// SalaryRepo nómina en memoria, indexada por empleado.
type SalaryRepo struct {
	s    *Store
	inTx bool
}

// Upsert crea o reemplaza la línea del empleado conservando ID y CreatedAt originales.
func (r *SalaryRepo) Upsert(ctx context.Context, s *entity.Salary) (*entity.Salary, error) {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.employees[s.EmployeeID]; !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	stored := *s
	stored.Employee = nil
	if existing, ok := r.s.salaries[s.EmployeeID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}
	r.s.salaries[s.EmployeeID] = stored
	return r.withEmployee(stored), nil
}

// GetByEmployeeID línea del empleado; (nil, nil) si no tiene.
func (r *SalaryRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Salary, error) {
	defer r.s.rlock(r.inTx)()
	s, ok := r.s.salaries[employeeID]
	if !ok {
		return nil, nil
	}
	return r.withEmployee(s), nil
}

// List ordenado por apellido del empleado.
func (r *SalaryRepo) List(ctx context.Context) ([]*entity.Salary, error) {
	defer r.s.rlock(r.inTx)()
	list := make([]*entity.Salary, 0, len(r.s.salaries))
	for _, s := range r.s.salaries {
		list = append(list, r.withEmployee(s))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Employee, list[j].Employee
		if a == nil || b == nil || a.LastName == b.LastName {
			return list[i].EmployeeID < list[j].EmployeeID
		}
		return a.LastName < b.LastName
	})
	return list, nil
}

func (r *SalaryRepo) withEmployee(s entity.Salary) *entity.Salary {
	if e, ok := r.s.employees[s.EmployeeID]; ok {
		s.Employee = e.Summary()
	}
	return &s
}
