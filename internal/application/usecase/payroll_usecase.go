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
	"github.com/shopspring/decimal"
)

// PayrollUseCase líneas de nómina (una por empleado) y sus totales.
type PayrollUseCase struct {
	repo repository.SalaryRepository
}

// NewPayrollUseCase construye el caso de uso.
func NewPayrollUseCase(repo repository.SalaryRepository) *PayrollUseCase {
	return &PayrollUseCase{repo: repo}
}

// List todas las líneas, ordenadas por apellido.
func (uc *PayrollUseCase) List(ctx context.Context) ([]dto.SalaryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSalary(s))
	}
	return items, nil
}

// GetByEmployee línea del empleado; ErrNotFound si no tiene.
func (uc *PayrollUseCase) GetByEmployee(ctx context.Context, employeeID string) (*dto.SalaryResponse, error) {
	if uuid.Validate(employeeID) != nil {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSalary(s)
	return &out, nil
}

// Upsert crea o reemplaza la línea del empleado. Importes no negativos; currency ISO de 3 letras.
func (uc *PayrollUseCase) Upsert(ctx context.Context, in dto.UpsertSalaryRequest) (*dto.SalaryResponse, error) {
	if uuid.Validate(in.EmployeeID) != nil {
		return nil, fmt.Errorf("%w: employeeId inválido", domain.ErrInvalidInput)
	}
	bonus, deductions := decimal.Zero, decimal.Zero
	if in.Bonus != nil {
		bonus = *in.Bonus
	}
	if in.Deductions != nil {
		deductions = *in.Deductions
	}
	for name, v := range map[string]decimal.Decimal{"baseSalary": in.BaseSalary, "bonus": bonus, "deductions": deductions} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, name)
		}
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency debe ser un código de 3 letras", domain.ErrInvalidInput)
	}
	now := time.Now()
	s, err := uc.repo.Upsert(ctx, &entity.Salary{
		ID:         uuid.New().String(),
		EmployeeID: in.EmployeeID,
		BaseSalary: in.BaseSalary.Round(2),
		Bonus:      bonus.Round(2),
		Deductions: deductions.Round(2),
		Currency:   currency,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSalary(s)
	return &out, nil
}

// Summary totales de base, bonos, deducciones y neto sobre todas las líneas.
func (uc *PayrollUseCase) Summary(ctx context.Context) (*dto.PayrollSummaryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.PayrollSummaryResponse{
		TotalEmployees:  len(list),
		TotalBaseSalary: decimal.Zero,
		TotalBonus:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		Salaries:        make([]dto.SalaryResponse, 0, len(list)),
	}
	for _, s := range list {
		out.TotalBaseSalary = out.TotalBaseSalary.Add(s.BaseSalary)
		out.TotalBonus = out.TotalBonus.Add(s.Bonus)
		out.TotalDeductions = out.TotalDeductions.Add(s.Deductions)
		out.TotalNet = out.TotalNet.Add(s.Net())
		out.Salaries = append(out.Salaries, dto.FromSalary(s))
	}
	return out, nil
}
