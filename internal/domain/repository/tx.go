package repository

import "context"

// RegistrationTx repositorios atados a una misma transacción.
type RegistrationTx struct {
	Accounts  AccountRepository
	Employees EmployeeRepository
}

// OffboardingTx repositorios usados al eliminar un empleado.
type OffboardingTx struct {
	Employees   EmployeeRepository
	Departments DepartmentRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(tx RegistrationTx) error) error
	RunOffboarding(ctx context.Context, fn func(tx OffboardingTx) error) error
}
