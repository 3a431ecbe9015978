package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; permite usar los repositorios dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar los scan*.
type pgxScanner interface {
	Scan(dest ...any) error
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// constraintName nombre del constraint violado, o "" si err no es un *pgconn.PgError.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// dateArg convierte una fecha de calendario al valor que pgx codifica como DATE.
func dateArg(d entity.Date) time.Time {
	return d.Midnight(time.UTC)
}

func optionalDateArg(d *entity.Date) any {
	if d == nil {
		return nil
	}
	return dateArg(*d)
}
