package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
)

// DepartmentUseCase casos de uso CRUD para departamentos.
type DepartmentUseCase struct {
	repo      repository.DepartmentRepository
	employees repository.EmployeeRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository, employees repository.EmployeeRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo, employees: employees}
}

// Create crea un nuevo departamento.
func (uc *DepartmentUseCase) Create(ctx context.Context, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	managerID, err := optionalID(in.ManagerID, "managerId")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Department{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ManagerID:   managerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, d)
}

// GetByID obtiene un departamento con su responsable y empleados.
func (uc *DepartmentUseCase) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	d, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := uc.toResponse(ctx, d)
	if err != nil {
		return nil, err
	}
	members, err := uc.employees.List(ctx, entity.EmployeeFilter{DepartmentID: d.ID})
	if err != nil {
		return nil, err
	}
	out.Employees = make([]dto.EmployeeSummaryResponse, 0, len(members))
	for _, e := range members {
		out.Employees = append(out.Employees, dto.EmployeeSummaryResponse{
			ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, Position: e.Position,
		})
	}
	count := len(members)
	out.EmployeeCount = &count
	return out, nil
}

// Update actualiza un departamento. ManagerID "" quita el responsable.
func (uc *DepartmentUseCase) Update(ctx context.Context, id string, in dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	d, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		d.Name = name
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
	if in.ManagerID != nil {
		managerID, err := optionalID(in.ManagerID, "managerId")
		if err != nil {
			return nil, err
		}
		d.ManagerID = managerID
	}
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, d)
}

// List lista departamentos con responsable y cantidad de empleados.
func (uc *DepartmentUseCase) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.repo.Headcount(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(counts))
	for _, h := range counts {
		byID[h.DepartmentID] = h.Count
	}
	items := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out, err := uc.toResponse(ctx, d)
		if err != nil {
			return nil, err
		}
		n := byID[d.ID]
		out.EmployeeCount = &n
		items = append(items, *out)
	}
	return items, nil
}

// Delete elimina un departamento; sus empleados quedan sin departamento.
func (uc *DepartmentUseCase) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrDepartmentNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *DepartmentUseCase) find(ctx context.Context, id string) (*entity.Department, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrDepartmentNotFound
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDepartmentNotFound
	}
	return d, nil
}

func (uc *DepartmentUseCase) toResponse(ctx context.Context, d *entity.Department) (*dto.DepartmentResponse, error) {
	out := dto.FromDepartment(d)
	if d.ManagerID == nil {
		return out, nil
	}
	m, err := uc.employees.GetByID(ctx, *d.ManagerID)
	if err != nil {
		return nil, err
	}
	if m != nil {
		out.Manager = &dto.EmployeeSummaryResponse{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName}
	}
	return out, nil
}

// optionalID nil o "" = sin referencia; si no, debe ser un UUID.
func optionalID(id *string, field string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*id)
	if uuid.Validate(v) != nil {
		return nil, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, field)
	}
	return &v, nil
}
