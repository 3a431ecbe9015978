package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, email, password_hash, role, employee_id::text, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	db Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(db Querier) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, role, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, string(a.Role), a.EmployeeID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err) && constraintName(err) == "accounts_employee_id_key":
			return domain.ErrDuplicate
		case isUniqueViolation(err):
			return domain.ErrEmailAlreadyExists
		case isForeignKeyViolation(err):
			return domain.ErrEmployeeNotFound
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByEmail obtiene una cuenta por email (ya normalizado).
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

// GetByEmployeeID obtiene la cuenta vinculada a un empleado.
func (r *AccountRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*entity.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE employee_id = $1`, employeeID)
}

func (r *AccountRepo) findOne(ctx context.Context, query string, arg string) (*entity.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgxScanner) (*entity.Account, error) {
	var a entity.Account
	var role string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &role, &a.EmployeeID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Role = entity.Role(role)
	return &a, nil
}
