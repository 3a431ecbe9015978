package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

const defaultPosition = "Staff"

// EmployeeUseCase casos de uso de fichas de empleado.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
	tx   repository.TxRunner
	loc  *time.Location
}

// NewEmployeeUseCase construye el caso de uso. loc define el "hoy" de la fecha de alta por defecto.
func NewEmployeeUseCase(repo repository.EmployeeRepository, tx repository.TxRunner, loc *time.Location) *EmployeeUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &EmployeeUseCase{repo: repo, tx: tx, loc: loc}
}

// List lista empleados filtrando por estado y departamento.
func (uc *EmployeeUseCase) List(ctx context.Context, status, departmentID string) ([]dto.EmployeeResponse, error) {
	var f entity.EmployeeFilter
	if status != "" {
		st, ok := entity.ParseEmployeeStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
		}
		f.Status = &st
	}
	if departmentID != "" {
		if uuid.Validate(departmentID) != nil {
			return nil, fmt.Errorf("%w: departmentId inválido", domain.ErrInvalidInput)
		}
		f.DepartmentID = departmentID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.FromEmployee(e))
	}
	return items, nil
}

// GetByID obtiene un empleado con su departamento.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromEmployee(e), nil
}

// Create da de alta un empleado sin cuenta de acceso.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	now := time.Now()
	e := &entity.Employee{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Position:  strings.TrimSpace(in.Position),
		Address:   strings.TrimSpace(in.Address),
		HireDate:  entity.DateOf(now, uc.loc),
		Status:    entity.EmployeeActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.Position == "" {
		e.Position = defaultPosition
	}
	if in.HireDate != "" {
		d, err := entity.ParseDate(in.HireDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		e.HireDate = d
	}
	if in.Status != "" {
		st, ok := entity.ParseEmployeeStatus(in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, in.Status)
		}
		e.Status = st
	}
	deptID, err := optionalID(in.DepartmentID, "departmentId")
	if err != nil {
		return nil, err
	}
	e.DepartmentID = deptID
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, e.ID)
}

// Update modifica los campos informados. DepartmentID "" desvincula del departamento.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&e.FirstName, in.FirstName)
	set(&e.LastName, in.LastName)
	set(&e.Phone, in.Phone)
	set(&e.Position, in.Position)
	set(&e.Address, in.Address)
	if in.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.HireDate != nil {
		d, err := entity.ParseDate(*in.HireDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		e.HireDate = d
	}
	if in.Status != nil {
		st, ok := entity.ParseEmployeeStatus(*in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, *in.Status)
		}
		e.Status = st
	}
	if in.DepartmentID != nil {
		deptID, err := optionalID(in.DepartmentID, "departmentId")
		if err != nil {
			return nil, err
		}
		e.DepartmentID = deptID
	}
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now()
	e.Department = nil
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, e.ID)
}

// Delete da de baja al empleado: lo quita como responsable de departamentos y lo elimina
// junto con su cuenta, asistencia, permisos y nómina, en una sola transacción.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrEmployeeNotFound
	}
	err := uc.tx.RunOffboarding(ctx, func(tx repository.OffboardingTx) error {
		if err := tx.Departments.ClearManager(ctx, id); err != nil {
			return err
		}
		return tx.Employees.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info().Str("employee_id", id).Msg("empleado eliminado")
	return nil
}

func (uc *EmployeeUseCase) find(ctx context.Context, id string) (*entity.Employee, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func validateEmployee(e *entity.Employee) error {
	if e.FirstName == "" || e.LastName == "" {
		return fmt.Errorf("%w: firstName y lastName son obligatorios", domain.ErrInvalidInput)
	}
	if !govalidator.IsEmail(e.Email) {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return nil
}
