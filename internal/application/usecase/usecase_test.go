package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store       *memory.Store
	departments *usecase.DepartmentUseCase
	employees   *usecase.EmployeeUseCase
	leaves      *usecase.LeaveUseCase
	payroll     *usecase.PayrollUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:       store,
		departments: usecase.NewDepartmentUseCase(store.Departments(), store.Employees()),
		employees:   usecase.NewEmployeeUseCase(store.Employees(), store.TxRunner(), time.UTC),
		leaves:      usecase.NewLeaveUseCase(store.Leaves()),
		payroll:     usecase.NewPayrollUseCase(store.Salaries()),
	}
}

func (f *fixture) hire(t *testing.T, first, last string, deptID *string) *dto.EmployeeResponse {
	t.Helper()
	e, err := f.employees.Create(context.Background(), dto.CreateEmployeeRequest{
		FirstName:    first,
		LastName:     last,
		Email:        first + "@hrms.com",
		HireDate:     "2022-05-02",
		DepartmentID: deptID,
	})
	require.NoError(t, err)
	return e
}

func TestDepartments_CRUDYPlantilla(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	eng, err := f.departments.Create(ctx, dto.CreateDepartmentRequest{Name: "Engineering", Description: "Software"})
	require.NoError(t, err)
	_, err = f.departments.Create(ctx, dto.CreateDepartmentRequest{Name: "engineering"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	john := f.hire(t, "John", "Doe", &eng.ID)
	f.hire(t, "Jane", "Smith", &eng.ID)

	updated, err := f.departments.Update(ctx, eng.ID, dto.UpdateDepartmentRequest{ManagerID: &john.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.Manager)
	assert.Equal(t, "John", updated.Manager.FirstName)

	list, err := f.departments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EmployeeCount)
	assert.Equal(t, 2, *list[0].EmployeeCount)

	detail, err := f.departments.GetByID(ctx, eng.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Employees, 2)

	empty := ""
	cleared, err := f.departments.Update(ctx, eng.ID, dto.UpdateDepartmentRequest{ManagerID: &empty})
	require.NoError(t, err)
	assert.Nil(t, cleared.ManagerID)

	require.NoError(t, f.departments.Delete(ctx, eng.ID))
	after, err := f.employees.GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Nil(t, after.DepartmentID)

	_, err = f.departments.GetByID(ctx, eng.ID)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestEmployees_ValidacionAlCrear(t *testing.T) {
	f := newFixture()
	cases := map[string]dto.CreateEmployeeRequest{
		"sin nombre":     {Email: "x@y.com"},
		"email inválido": {FirstName: "A", LastName: "B", Email: "nope"},
		"fecha inválida": {FirstName: "A", LastName: "B", Email: "a@b.com", HireDate: "02/05/2022"},
		"status":         {FirstName: "A", LastName: "B", Email: "a@b.com", Status: "FIRED"},
		"departamento":   {FirstName: "A", LastName: "B", Email: "a@b.com", DepartmentID: strPtr("7")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.employees.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEmployees_ValoresPorDefectoYActualizacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	e := f.hire(t, "Mike", "Brown", nil)
	assert.Equal(t, "Staff", e.Position)
	assert.Equal(t, "ACTIVE", e.Status)
	assert.Equal(t, "2022-05-02", e.HireDate)

	pos, status := "Backend Developer", "on_leave"
	out, err := f.employees.Update(ctx, e.ID, dto.UpdateEmployeeRequest{Position: &pos, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, pos, out.Position)
	assert.Equal(t, "ON_LEAVE", out.Status)
	assert.Equal(t, "Mike", out.FirstName)

	onLeave, err := f.employees.List(ctx, "ON_LEAVE", "")
	require.NoError(t, err)
	assert.Len(t, onLeave, 1)
}

func TestEmployees_BorradoEnCascada(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	dept, err := f.departments.Create(ctx, dto.CreateDepartmentRequest{Name: "Human Resources"})
	require.NoError(t, err)
	sarah := f.hire(t, "Sarah", "Johnson", &dept.ID)
	_, err = f.departments.Update(ctx, dept.ID, dto.UpdateDepartmentRequest{ManagerID: &sarah.ID})
	require.NoError(t, err)

	require.NoError(t, f.store.Accounts().Create(ctx, &entity.Account{
		ID: "acc-1", Email: "hr@hrms.com", PasswordHash: "x", Role: entity.RoleHRManager, EmployeeID: &sarah.ID,
	}))
	_, err = f.payroll.Upsert(ctx, dto.UpsertSalaryRequest{EmployeeID: sarah.ID, BaseSalary: decimal.NewFromInt(50000)})
	require.NoError(t, err)
	_, err = f.leaves.Create(ctx, dto.CreateLeaveRequest{
		EmployeeID: sarah.ID, LeaveType: "ANNUAL", StartDate: "2024-07-01", EndDate: "2024-07-05",
	})
	require.NoError(t, err)

	require.NoError(t, f.employees.Delete(ctx, sarah.ID))

	acc, err := f.store.Accounts().GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Nil(t, acc)
	_, err = f.payroll.GetByEmployee(ctx, sarah.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	leaves, err := f.leaves.List(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, leaves)
	d, err := f.departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Nil(t, d.ManagerID)

	assert.ErrorIs(t, f.employees.Delete(ctx, sarah.ID), domain.ErrEmployeeNotFound)
}

func TestLeaves_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	e := f.hire(t, "Emily", "Davis", nil)

	_, err := f.leaves.Create(ctx, dto.CreateLeaveRequest{
		EmployeeID: e.ID, LeaveType: "SICK", StartDate: "2024-07-05", EndDate: "2024-07-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.leaves.Create(ctx, dto.CreateLeaveRequest{
		EmployeeID: e.ID, LeaveType: "SABBATICAL", StartDate: "2024-07-01", EndDate: "2024-07-02",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l, err := f.leaves.Create(ctx, dto.CreateLeaveRequest{
		EmployeeID: e.ID, LeaveType: "sick", StartDate: "2024-07-01", EndDate: "2024-07-03", Reason: "gripe",
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", l.Status)
	assert.Equal(t, 3, l.Days)
	require.NotNil(t, l.Employee)
	assert.Equal(t, "Emily", l.Employee.FirstName)

	approved, err := f.leaves.UpdateStatus(ctx, l.ID, dto.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	pending, err := f.leaves.List(ctx, "PENDING", "")
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, f.leaves.Delete(ctx, l.ID))
	_, err = f.leaves.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayroll_UpsertYResumen(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	john := f.hire(t, "John", "Doe", nil)
	anna := f.hire(t, "Anna", "Martinez", nil)

	bonus := decimal.RequireFromString("1500.50")
	first, err := f.payroll.Upsert(ctx, dto.UpsertSalaryRequest{
		EmployeeID: john.ID, BaseSalary: decimal.NewFromInt(60000), Bonus: &bonus,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", first.Currency)
	assert.True(t, first.NetSalary.Equal(decimal.RequireFromString("61500.50")))

	ded := decimal.NewFromInt(1000)
	second, err := f.payroll.Upsert(ctx, dto.UpsertSalaryRequest{
		EmployeeID: john.ID, BaseSalary: decimal.NewFromInt(65000), Deductions: &ded, Currency: "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "el upsert conserva la línea existente")
	assert.Equal(t, "USD", second.Currency)
	assert.True(t, second.Bonus.IsZero())

	_, err = f.payroll.Upsert(ctx, dto.UpsertSalaryRequest{EmployeeID: anna.ID, BaseSalary: decimal.NewFromInt(45000)})
	require.NoError(t, err)

	neg := decimal.NewFromInt(-1)
	_, err = f.payroll.Upsert(ctx, dto.UpsertSalaryRequest{EmployeeID: anna.ID, BaseSalary: decimal.NewFromInt(1), Bonus: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sum, err := f.payroll.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalEmployees)
	assert.True(t, sum.TotalBaseSalary.Equal(decimal.NewFromInt(110000)))
	assert.True(t, sum.TotalDeductions.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sum.TotalNet.Equal(decimal.NewFromInt(109000)))
	require.Len(t, sum.Salaries, 2)
	assert.Equal(t, john.ID, sum.Salaries[0].EmployeeID) // Doe antes que Martinez
}

func strPtr(s string) *string { return &s }
