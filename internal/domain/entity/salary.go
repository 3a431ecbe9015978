package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda usada cuando no se indica otra.
const DefaultCurrency = "EUR"

// Salary línea de nómina de un empleado (una por empleado).
type Salary struct {
	ID         string
	EmployeeID string
	BaseSalary decimal.Decimal
	Bonus      decimal.Decimal
	Deductions decimal.Decimal
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *EmployeeSummary
}

// Net = base + bonus - deducciones.
func (s *Salary) Net() decimal.Decimal {
	return s.BaseSalary.Add(s.Bonus).Sub(s.Deductions)
}
