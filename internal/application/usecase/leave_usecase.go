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
	"github.com/rs/zerolog/log"
)

// LeaveUseCase casos de uso de solicitudes de permiso.
type LeaveUseCase struct {
	repo repository.LeaveRepository
}

// NewLeaveUseCase construye el caso de uso.
func NewLeaveUseCase(repo repository.LeaveRepository) *LeaveUseCase {
	return &LeaveUseCase{repo: repo}
}

// List filtra por estado y empleado, más recientes primero.
func (uc *LeaveUseCase) List(ctx context.Context, status, employeeID string) ([]dto.LeaveResponse, error) {
	var f entity.LeaveFilter
	if status != "" {
		st, ok := entity.ParseLeaveStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
		}
		f.Status = &st
	}
	if employeeID != "" {
		if uuid.Validate(employeeID) != nil {
			return nil, fmt.Errorf("%w: employeeId inválido", domain.ErrInvalidInput)
		}
		f.EmployeeID = employeeID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromLeaveList(list), nil
}

// GetByID obtiene una solicitud.
func (uc *LeaveUseCase) GetByID(ctx context.Context, id string) (*dto.LeaveResponse, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromLeave(l)
	return &out, nil
}

// Create registra una solicitud PENDING. endDate >= startDate.
func (uc *LeaveUseCase) Create(ctx context.Context, in dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	if uuid.Validate(in.EmployeeID) != nil {
		return nil, fmt.Errorf("%w: employeeId inválido", domain.ErrInvalidInput)
	}
	leaveType, ok := entity.ParseLeaveType(in.LeaveType)
	if !ok {
		return nil, fmt.Errorf("%w: leaveType desconocido %q", domain.ErrInvalidInput, in.LeaveType)
	}
	start, err := entity.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate: %v", domain.ErrInvalidInput, err)
	}
	end, err := entity.ParseDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate: %v", domain.ErrInvalidInput, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}
	now := time.Now()
	l := &entity.LeaveRequest{
		ID:         uuid.New().String(),
		EmployeeID: in.EmployeeID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(in.Reason),
		Status:     entity.LeavePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, l.ID)
}

// UpdateStatus aprueba o rechaza una solicitud.
func (uc *LeaveUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateLeaveStatusRequest) (*dto.LeaveResponse, error) {
	st, ok := entity.ParseLeaveStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	l, err := uc.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	log.Info().Str("leave_id", id).Str("status", string(st)).Msg("estado de permiso actualizado")
	out := dto.FromLeave(l)
	return &out, nil
}

// Delete elimina una solicitud.
func (uc *LeaveUseCase) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
