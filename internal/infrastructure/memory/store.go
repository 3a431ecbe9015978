// Package memory implementa los puertos de persistencia en memoria. Replica las restricciones
// del esquema PostgreSQL (unicidad, claves foráneas y borrados en cascada) para desarrollo local
// (STORAGE_DRIVER=memory) y tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

type attendanceKey struct {
	employeeID string
	date       entity.Date
}

// Store contenedor compartido por todos los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]entity.Account
	employees   map[string]entity.Employee
	departments map[string]entity.Department
	attendance  map[attendanceKey]entity.AttendanceRecord
	leaves      map[string]entity.LeaveRequest
	salaries    map[string]entity.Salary // por employeeID
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]entity.Account),
		employees:   make(map[string]entity.Employee),
		departments: make(map[string]entity.Department),
		attendance:  make(map[attendanceKey]entity.AttendanceRecord),
		leaves:      make(map[string]entity.LeaveRequest),
		salaries:    make(map[string]entity.Salary),
	}
}

// Accounts devuelve el repositorio de cuentas.
func (s *Store) Accounts() *AccountRepo { return &AccountRepo{s: s} }

// Employees devuelve el repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s: s} }

// Departments devuelve el repositorio de departamentos.
func (s *Store) Departments() *DepartmentRepo { return &DepartmentRepo{s: s} }

// Attendance devuelve el repositorio del ledger de asistencia.
func (s *Store) Attendance() *AttendanceRepo { return &AttendanceRepo{s: s} }

// Leaves devuelve el repositorio de permisos.
func (s *Store) Leaves() *LeaveRepo { return &LeaveRepo{s: s} }

// Salaries devuelve el repositorio de nómina.
func (s *Store) Salaries() *SalaryRepo { return &SalaryRepo{s: s} }

// TxRunner devuelve el ejecutor de transacciones.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// lock toma el candado de escritura salvo que el llamador ya esté dentro de una transacción.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

type snapshot struct {
	accounts    map[string]entity.Account
	employees   map[string]entity.Employee
	departments map[string]entity.Department
	attendance  map[attendanceKey]entity.AttendanceRecord
	leaves      map[string]entity.LeaveRequest
	salaries    map[string]entity.Salary
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		accounts:    maps.Clone(s.accounts),
		employees:   maps.Clone(s.employees),
		departments: maps.Clone(s.departments),
		attendance:  maps.Clone(s.attendance),
		leaves:      maps.Clone(s.leaves),
		salaries:    maps.Clone(s.salaries),
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.employees = snap.employees
	s.departments = snap.departments
	s.attendance = snap.attendance
	s.leaves = snap.leaves
	s.salaries = snap.salaries
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones sobre el Store y restaura el estado si fn falla.
type TxRunner struct {
	s *Store
}

// RunRegistration ejecuta fn con repos de cuentas y empleados en una sola transacción.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(tx repository.RegistrationTx) error) error {
	return r.run(func() error {
		return fn(repository.RegistrationTx{
			Accounts:  &AccountRepo{s: r.s, inTx: true},
			Employees: &EmployeeRepo{s: r.s, inTx: true},
		})
	})
}

// RunOffboarding ejecuta fn con repos de empleados y departamentos en una sola transacción.
func (r *TxRunner) RunOffboarding(ctx context.Context, fn func(tx repository.OffboardingTx) error) error {
	return r.run(func() error {
		return fn(repository.OffboardingTx{
			Employees:   &EmployeeRepo{s: r.s, inTx: true},
			Departments: &DepartmentRepo{s: r.s, inTx: true},
		})
	})
}

func (r *TxRunner) run(fn func() error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
