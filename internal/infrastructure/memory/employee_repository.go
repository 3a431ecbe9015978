package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository   = (*EmployeeRepo)(nil)
	_ repository.DepartmentRepository = (*DepartmentRepo)(nil)
)

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct {
	s    *Store
	inTx bool
}

// Create persiste un empleado; el departamento, si se indica, debe existir.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	defer r.s.lock(r.inTx)()
	if err := r.checkDepartment(e.DepartmentID); err != nil {
		return err
	}
	r.s.employees[e.ID] = copyEmployee(e)
	return nil
}

// GetByID obtiene un empleado con su departamento; (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	defer r.s.rlock(r.inTx)()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	out := r.withDepartment(e)
	return &out, nil
}

// Update reemplaza los datos del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.employees[e.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	if err := r.checkDepartment(e.DepartmentID); err != nil {
		return err
	}
	r.s.employees[e.ID] = copyEmployee(e)
	return nil
}

// List filtra por estado y departamento, ordenado por apellido.
func (r *EmployeeRepo) List(ctx context.Context, f entity.EmployeeFilter) ([]*entity.Employee, error) {
	defer r.s.rlock(r.inTx)()
	var list []*entity.Employee
	for _, e := range r.s.employees {
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		if f.DepartmentID != "" && (e.DepartmentID == nil || *e.DepartmentID != f.DepartmentID) {
			continue
		}
		out := r.withDepartment(e)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastName != list[j].LastName {
			return strings.ToLower(list[i].LastName) < strings.ToLower(list[j].LastName)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Delete elimina el empleado y, en cascada, su cuenta, asistencia, permisos y nómina.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.s.employees, id)
	for accID, a := range r.s.accounts {
		if a.EmployeeID != nil && *a.EmployeeID == id {
			delete(r.s.accounts, accID)
		}
	}
	for k := range r.s.attendance {
		if k.employeeID == id {
			delete(r.s.attendance, k)
		}
	}
	for leaveID, l := range r.s.leaves {
		if l.EmployeeID == id {
			delete(r.s.leaves, leaveID)
		}
	}
	delete(r.s.salaries, id)
	for deptID, d := range r.s.departments {
		if d.ManagerID != nil && *d.ManagerID == id {
			d.ManagerID = nil
			r.s.departments[deptID] = d
		}
	}
	return nil
}

// Count cuenta empleados, opcionalmente filtrando por estado.
func (r *EmployeeRepo) Count(ctx context.Context, status *entity.EmployeeStatus) (int, error) {
	defer r.s.rlock(r.inTx)()
	n := 0
	for _, e := range r.s.employees {
		if status == nil || e.Status == *status {
			n++
		}
	}
	return n, nil
}

// CountHiredSince cuenta contrataciones con fecha >= since.
func (r *EmployeeRepo) CountHiredSince(ctx context.Context, since entity.Date) (int, error) {
	defer r.s.rlock(r.inTx)()
	n := 0
	for _, e := range r.s.employees {
		if !e.HireDate.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *EmployeeRepo) checkDepartment(id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := r.s.departments[*id]; !ok {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func (r *EmployeeRepo) withDepartment(e entity.Employee) entity.Employee {
	e.DepartmentID = cloneString(e.DepartmentID)
	e.Department = nil
	if e.DepartmentID != nil {
		if d, ok := r.s.departments[*e.DepartmentID]; ok {
			e.Department = &d
		}
	}
	return e
}

func copyEmployee(e *entity.Employee) entity.Employee {
	stored := *e
	stored.DepartmentID = cloneString(e.DepartmentID)
	stored.Department = nil
	return stored
}

// DepartmentRepo departamentos en memoria.
type DepartmentRepo struct {
	s    *Store
	inTx bool
}

// Create persiste un departamento; el nombre es único.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	defer r.s.lock(r.inTx)()
	if err := r.validate(d); err != nil {
		return err
	}
	r.s.departments[d.ID] = copyDepartment(d)
	return nil
}

// GetByID obtiene un departamento; (nil, nil) si no existe.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	defer r.s.rlock(r.inTx)()
	d, ok := r.s.departments[id]
	if !ok {
		return nil, nil
	}
	d.ManagerID = cloneString(d.ManagerID)
	return &d, nil
}

// Update reemplaza los datos del departamento.
func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.departments[d.ID]; !ok {
		return domain.ErrDepartmentNotFound
	}
	if err := r.validate(d); err != nil {
		return err
	}
	r.s.departments[d.ID] = copyDepartment(d)
	return nil
}

// List ordenado por nombre.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	defer r.s.rlock(r.inTx)()
	list := make([]*entity.Department, 0, len(r.s.departments))
	for _, d := range r.s.departments {
		d.ManagerID = cloneString(d.ManagerID)
		list = append(list, &d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Delete elimina el departamento; los empleados quedan sin departamento.
func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.departments[id]; !ok {
		return domain.ErrDepartmentNotFound
	}
	delete(r.s.departments, id)
	for empID, e := range r.s.employees {
		if e.DepartmentID != nil && *e.DepartmentID == id {
			e.DepartmentID = nil
			r.s.employees[empID] = e
		}
	}
	return nil
}

// Headcount empleados por departamento, ordenado por nombre.
func (r *DepartmentRepo) Headcount(ctx context.Context) ([]entity.DepartmentHeadcount, error) {
	defer r.s.rlock(r.inTx)()
	counts := make(map[string]int, len(r.s.departments))
	for _, e := range r.s.employees {
		if e.DepartmentID != nil {
			counts[*e.DepartmentID]++
		}
	}
	out := make([]entity.DepartmentHeadcount, 0, len(r.s.departments))
	for id, d := range r.s.departments {
		out = append(out, entity.DepartmentHeadcount{DepartmentID: id, Name: d.Name, Count: counts[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ClearManager desvincula al empleado de los departamentos que dirige.
func (r *DepartmentRepo) ClearManager(ctx context.Context, employeeID string) error {
	defer r.s.lock(r.inTx)()
	for id, d := range r.s.departments {
		if d.ManagerID != nil && *d.ManagerID == employeeID {
			d.ManagerID = nil
			r.s.departments[id] = d
		}
	}
	return nil
}

func (r *DepartmentRepo) validate(d *entity.Department) error {
	for id, existing := range r.s.departments {
		if id != d.ID && strings.EqualFold(existing.Name, d.Name) {
			return domain.ErrDuplicate
		}
	}
	if d.ManagerID != nil {
		if _, ok := r.s.employees[*d.ManagerID]; !ok {
			return domain.ErrEmployeeNotFound
		}
	}
	return nil
}

func copyDepartment(d *entity.Department) entity.Department {
	stored := *d
	stored.ManagerID = cloneString(d.ManagerID)
	return stored
}
