package repository

import (
	"context"

	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// LeaveRepository define el puerto de persistencia para LeaveRequest (DIP).
type LeaveRepository interface {
	Create(ctx context.Context, l *entity.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error)
	List(ctx context.Context, f entity.LeaveFilter) ([]*entity.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status entity.LeaveStatus) (*entity.LeaveRequest, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status entity.LeaveStatus) (int, error)
	// Recent últimas solicitudes por fecha de creación.
	Recent(ctx context.Context, limit int) ([]*entity.LeaveRequest, error)
}
