package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertSalaryRequest crea o reemplaza la línea de nómina de un empleado.
// Bonus y Deductions ausentes valen 0; Currency ausente vale EUR.
type UpsertSalaryRequest struct {
	EmployeeID string           `json:"employeeId"`
	BaseSalary decimal.Decimal  `json:"baseSalary"`
	Bonus      *decimal.Decimal `json:"bonus"`
	Deductions *decimal.Decimal `json:"deductions"`
	Currency   string           `json:"currency"`
}

// SalaryResponse línea de nómina con el neto calculado.
type SalaryResponse struct {
	ID         string                   `json:"id"`
	EmployeeID string                   `json:"employeeId"`
	BaseSalary decimal.Decimal          `json:"baseSalary"`
	Bonus      decimal.Decimal          `json:"bonus"`
	Deductions decimal.Decimal          `json:"deductions"`
	NetSalary  decimal.Decimal          `json:"netSalary"`
	Currency   string                   `json:"currency"`
	Employee   *EmployeeSummaryResponse `json:"employee,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

// PayrollSummaryResponse totales de nómina.
type PayrollSummaryResponse struct {
	TotalEmployees  int              `json:"totalEmployees"`
	TotalBaseSalary decimal.Decimal  `json:"totalBaseSalary"`
	TotalBonus      decimal.Decimal  `json:"totalBonus"`
	TotalDeductions decimal.Decimal  `json:"totalDeductions"`
	TotalNet        decimal.Decimal  `json:"totalNet"`
	Salaries        []SalaryResponse `json:"salaries"`
}
