package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

func TestClasificacionDeErroresPg(t *testing.T) {
	unique := fmt.Errorf("insert attendance: %w", &pgconn.PgError{Code: "23505", ConstraintName: "attendances_employee_date_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "attendances_employee_id_fkey"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.Equal(t, "attendances_employee_date_key", constraintName(unique))

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))

	plain := errors.New("conexión rechazada")
	assert.False(t, isUniqueViolation(plain))
	assert.Equal(t, "", constraintName(plain))
}

func TestDateArg_MedianocheUTC(t *testing.T) {
	d := entity.Date{Year: 2024, Month: time.March, Day: 4}
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), dateArg(d))
	assert.Nil(t, optionalDateArg(nil))
}
