package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/hr-erp-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store, *fakeClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &fakeClock{t: time.Date(2024, time.March, 11, 8, 0, 0, 0, time.UTC)}
	uc := auth.NewAuthUseCase(
		store.Accounts(), store.Employees(), store.TxRunner(),
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 7 * 24 * 60, Issuer: "hr-erp-test"},
		bcrypt.MinCost, time.UTC,
	).WithClock(clock.Now)
	return uc, store, clock
}

func registerJane(t *testing.T, uc *auth.AuthUseCase) *dto.AuthResponse {
	t.Helper()
	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:     "Jane.Smith@Example.com ",
		Password:  "password123",
		FirstName: "Jane",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_CreaCuentaYEmpleado(t *testing.T) {
	uc, store, _ := newAuth(t)
	resp := registerJane(t, uc)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane.smith@example.com", resp.User.Email)
	assert.Equal(t, string(entity.RoleEmployee), resp.User.Role)
	require.NotNil(t, resp.User.Employee)
	assert.Equal(t, "Staff", resp.User.Employee.Position)
	assert.Equal(t, "2024-03-11", resp.User.Employee.HireDate)

	acc, err := store.Accounts().GetByEmail(context.Background(), "jane.smith@example.com")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.NotEqual(t, "password123", acc.PasswordHash)
	require.NotNil(t, acc.EmployeeID)
	assert.Equal(t, resp.User.Employee.ID, *acc.EmployeeID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, store, _ := newAuth(t)
	registerJane(t, uc)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "jane.smith@example.com", Password: "otherpass", FirstName: "J", LastName: "S",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	n, err := store.Employees().Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "el registro fallido no deja empleados huérfanos")
}

func TestRegister_Validacion(t *testing.T) {
	uc, _, _ := newAuth(t)
	cases := map[string]dto.RegisterRequest{
		"email":    {Email: "not-an-email", Password: "password123", FirstName: "A", LastName: "B"},
		"password": {Email: "a@b.com", Password: "123", FirstName: "A", LastName: "B"},
		"nombre":   {Email: "a@b.com", Password: "password123"},
		"rol":      {Email: "a@b.com", Password: "password123", FirstName: "A", LastName: "B", Role: "ROOT"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_DepartamentoInexistenteRevierte(t *testing.T) {
	uc, store, _ := newAuth(t)
	dept := "5f0c3b1e-8a5d-4c59-9a43-0a1d1f7c9e11"
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.com", Password: "password123", FirstName: "A", LastName: "B", DepartmentID: &dept,
	})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	acc, err := store.Accounts().GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestLogin_CredencialesInvalidasIdenticas(t *testing.T) {
	uc, _, _ := newAuth(t)
	registerJane(t, uc)

	_, errWrongPass := uc.Login(context.Background(), dto.LoginRequest{Email: "jane.smith@example.com", Password: "nope"})
	_, errNoUser := uc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})

	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestLogin_TokenValidoHastaExpirar(t *testing.T) {
	uc, _, clock := newAuth(t)
	reg := registerJane(t, uc)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "JANE.SMITH@example.com", Password: "password123"})
	require.NoError(t, err)

	id, err := uc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id.AccountID)
	assert.Equal(t, reg.User.Employee.ID, id.EmployeeID)
	assert.Equal(t, entity.RoleEmployee, id.Role)

	clock.t = clock.t.Add(7*24*time.Hour - time.Minute)
	_, err = uc.Verify(resp.Token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = uc.Verify(resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrExpired)
	assert.True(t, auth.IsTokenExpired(err))
}

func TestVerify_TokenFalsificado(t *testing.T) {
	uc, _, clock := newAuth(t)
	forged, err := jwt.Generate("otro-secret", jwt.Subject{AccountID: "x", Role: "ADMIN"}, "hr-erp-test", time.Hour, clock.t)
	require.NoError(t, err)

	_, err = uc.Verify(forged)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrInvalid)
	assert.False(t, auth.IsTokenExpired(err))

	_, err = uc.Verify("garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestProfile_DevuelveCuentaYEmpleado(t *testing.T) {
	uc, _, _ := newAuth(t)
	reg := registerJane(t, uc)

	p, err := uc.Profile(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User.Email, p.Email)
	require.NotNil(t, p.Employee)
	assert.Equal(t, "Jane", p.Employee.FirstName)

	_, err = uc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestNormalizeEmail_MinusculasYEspacios(t *testing.T) {
	assert.Equal(t, "jane@example.com", auth.NormalizeEmail("  JANE@Example.COM "))
	// NFKC pliega la forma de ancho completo.
	assert.Equal(t, "jane@example.com", auth.NormalizeEmail("ｊａｎｅ@example.com"))
}
