package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration crea cuenta y empleado en la misma transacción.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(tx repository.RegistrationTx) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(repository.RegistrationTx{
			Accounts:  NewAccountRepository(tx),
			Employees: NewEmployeeRepository(tx),
		})
	})
}

// RunOffboarding baja de un empleado junto con la limpieza de departamentos.
func (r *TxRunner) RunOffboarding(ctx context.Context, fn func(tx repository.OffboardingTx) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(repository.OffboardingTx{
			Employees:   NewEmployeeRepository(tx),
			Departments: NewDepartmentRepository(tx),
		})
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
