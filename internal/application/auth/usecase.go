package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
	"github.com/jhoicas/hr-erp-api/pkg/jwt"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

const (
	minPasswordLength = 6
	defaultPosition   = "Staff"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, verificación de token y perfil.
type AuthUseCase struct {
	accounts   repository.AccountRepository
	employees  repository.EmployeeRepository
	tx         repository.TxRunner
	jwtCfg     JWTConfig
	bcryptCost int
	loc        *time.Location
	now        func() time.Time
	dummyHash  []byte
}

// NewAuthUseCase construye el caso de uso de auth. loc define el "hoy" de la fecha de alta.
func NewAuthUseCase(
	accounts repository.AccountRepository,
	employees repository.EmployeeRepository,
	tx repository.TxRunner,
	jwtCfg JWTConfig,
	bcryptCost int,
	loc *time.Location,
) *AuthUseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if loc == nil {
		loc = time.Local
	}
	// Hash de referencia para que un email inexistente cueste lo mismo que una contraseña errónea.
	dummy, err := bcrypt.GenerateFromPassword([]byte("hr-erp-dummy-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("auth: dummy hash: %v", err))
	}
	return &AuthUseCase{
		accounts:   accounts,
		employees:  employees,
		tx:         tx,
		jwtCfg:     jwtCfg,
		bcryptCost: bcryptCost,
		loc:        loc,
		now:        time.Now,
		dummyHash:  dummy,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Register crea la cuenta y su ficha de empleado en una sola transacción y devuelve un token.
// ErrEmailAlreadyExists si el email ya tiene cuenta.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	if !govalidator.IsEmail(email) {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
	}
	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: firstName y lastName son obligatorios", domain.ErrInvalidInput)
	}
	role := entity.RoleEmployee
	if in.Role != "" {
		r, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
		}
		role = r
	}
	position := strings.TrimSpace(in.Position)
	if position == "" {
		position = defaultPosition
	}
	var departmentID *string
	if in.DepartmentID != nil && *in.DepartmentID != "" {
		if uuid.Validate(*in.DepartmentID) != nil {
			return nil, fmt.Errorf("%w: departmentId inválido", domain.ErrInvalidInput)
		}
		departmentID = in.DepartmentID
	}

	existing, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Position:     position,
		HireDate:     entity.DateOf(now, uc.loc),
		DepartmentID: departmentID,
		Status:       entity.EmployeeActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   &employee.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunRegistration(ctx, func(tx repository.RegistrationTx) error {
		if err := tx.Employees.Create(ctx, employee); err != nil {
			return err
		}
		return tx.Accounts.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.issue(account)
	if err != nil {
		return nil, err
	}
	log.Info().Str("account_id", account.ID).Str("role", string(role)).Msg("cuenta registrada")
	return &dto.AuthResponse{
		Message: "Usuario registrado correctamente",
		Token:   token,
		User:    dto.FromAccount(account, employee),
	}, nil
}

// Login verifica email/password y emite un token. Email inexistente y contraseña errónea
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	account, err := uc.accounts.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	employee, err := uc.linkedEmployee(ctx, account)
	if err != nil {
		return nil, err
	}
	token, err := uc.issue(account)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Message: "Login exitoso",
		Token:   token,
		User:    dto.FromAccount(account, employee),
	}, nil
}

// Verify valida firma y expiración sin tocar la base de datos. El error envuelve
// domain.ErrInvalidToken y el motivo (jwt.ErrExpired / jwt.ErrInvalid).
func (uc *AuthUseCase) Verify(token string) (entity.Identity, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, uc.now())
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return entity.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, jwt.ErrInvalid)
	}
	return entity.Identity{AccountID: claims.AccountID, EmployeeID: claims.EmployeeID, Role: role}, nil
}

// Profile cuenta actual con su empleado y departamento.
func (uc *AuthUseCase) Profile(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	employee, err := uc.linkedEmployee(ctx, account)
	if err != nil {
		return nil, err
	}
	out := dto.FromAccount(account, employee)
	return &out, nil
}

func (uc *AuthUseCase) linkedEmployee(ctx context.Context, a *entity.Account) (*entity.Employee, error) {
	if a.EmployeeID == nil {
		return nil, nil
	}
	return uc.employees.GetByID(ctx, *a.EmployeeID)
}

func (uc *AuthUseCase) issue(a *entity.Account) (string, error) {
	sub := jwt.Subject{AccountID: a.ID, Role: string(a.Role)}
	if a.EmployeeID != nil {
		sub.EmployeeID = *a.EmployeeID
	}
	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	token, err := jwt.Generate(uc.jwtCfg.Secret, sub, uc.jwtCfg.Issuer, ttl, uc.now())
	if err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return token, nil
}

// NormalizeEmail recorta, pasa a minúsculas y aplica NFKC.
func NormalizeEmail(email string) string {
	return norm.NFKC.String(strings.ToLower(strings.TrimSpace(email)))
}

// IsTokenExpired indica si un error de Verify se debe a expiración.
func IsTokenExpired(err error) bool {
	return errors.Is(err, jwt.ErrExpired)
}
