// seed puebla una base PostgreSQL vacía con datos de demostración: departamentos, una cuenta
// ADMIN, una HR_MANAGER, empleados de ejemplo, nómina, permisos y 7 días de asistencia.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*). Si admin@hrms.com ya existe
// no hace nada.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jhoicas/hr-erp-api/internal/application/attendance"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/hr-erp-api/pkg/config"
	"github.com/jhoicas/hr-erp-api/pkg/logger"
	"github.com/shopspring/decimal"
)

const seedPassword = "password123"

type seedEmployee struct {
	firstName, lastName, email, position string
	deptIdx                              int
}

var departments = []dto.CreateDepartmentRequest{
	{Name: "Engineering", Description: "Software development and IT"},
	{Name: "Human Resources", Description: "HR and recruitment"},
	{Name: "Finance", Description: "Accounting and financial planning"},
	{Name: "Marketing", Description: "Marketing and communications"},
	{Name: "Operations", Description: "Business operations"},
}

var sampleEmployees = []seedEmployee{
	{"John", "Doe", "john.doe@hrms.com", "Senior Developer", 0},
	{"Jane", "Smith", "jane.smith@hrms.com", "Frontend Developer", 0},
	{"Mike", "Brown", "mike.brown@hrms.com", "Backend Developer", 0},
	{"Emily", "Davis", "emily.davis@hrms.com", "Financial Analyst", 2},
	{"David", "Wilson", "david.wilson@hrms.com", "Marketing Specialist", 3},
	{"Lisa", "Anderson", "lisa.anderson@hrms.com", "Operations Manager", 4},
	{"Tom", "Taylor", "tom.taylor@hrms.com", "DevOps Engineer", 0},
	{"Anna", "Martinez", "anna.martinez@hrms.com", "UX Designer", 0},
}

type seeder struct {
	auth        *auth.AuthUseCase
	employees   *usecase.EmployeeUseCase
	departments *usecase.DepartmentUseCase
	leaves      *usecase.LeaveUseCase
	payroll     *usecase.PayrollUseCase
	ledger      *attendance.Ledger
	loc         *time.Location
	rnd         *rand.Rand
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	accounts := postgres.NewAccountRepository(pool)
	existing, err := accounts.GetByEmail(ctx, "admin@hrms.com")
	if err != nil {
		log.Fatal().Err(err).Msg("comprobar datos existentes")
	}
	if existing != nil {
		log.Info().Msg("la base ya tiene datos de demostración; nada que hacer")
		return
	}

	employeeRepo := postgres.NewEmployeeRepository(pool)
	tx := postgres.NewTxRunner(pool)
	s := &seeder{
		auth: auth.NewAuthUseCase(accounts, employeeRepo, tx, auth.JWTConfig{
			Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
		}, cfg.Auth.BcryptCost, loc),
		employees:   usecase.NewEmployeeUseCase(employeeRepo, tx, loc),
		departments: usecase.NewDepartmentUseCase(postgres.NewDepartmentRepository(pool), employeeRepo),
		leaves:      usecase.NewLeaveUseCase(postgres.NewLeaveRepository(pool)),
		payroll:     usecase.NewPayrollUseCase(postgres.NewSalaryRepository(pool)),
		ledger:      attendance.NewLedger(postgres.NewAttendanceRepository(pool), loc, cfg.Attendance.LateHour),
		loc:         loc,
		// Semilla fija: dos ejecuciones sobre bases vacías generan los mismos datos.
		rnd: rand.New(rand.NewPCG(2024, 1)),
	}
	if err := s.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Str("admin", "admin@hrms.com / "+seedPassword).
		Str("hr_manager", "hr@hrms.com / "+seedPassword).
		Msg("base de datos poblada")
}

func (s *seeder) run(ctx context.Context) error {
	deptIDs := make([]string, 0, len(departments))
	for _, d := range departments {
		out, err := s.departments.Create(ctx, d)
		if err != nil {
			return fmt.Errorf("departamento %s: %w", d.Name, err)
		}
		deptIDs = append(deptIDs, out.ID)
	}

	var employeeIDs []string
	admin, err := s.account(ctx, dto.RegisterRequest{
		Email: "admin@hrms.com", Role: string(entity.RoleAdmin),
		FirstName: "Admin", LastName: "User", Position: "System Administrator", DepartmentID: &deptIDs[1],
	}, "+1234567890", "123 Admin Street", "2020-01-01")
	if err != nil {
		return err
	}
	employeeIDs = append(employeeIDs, admin)

	hr, err := s.account(ctx, dto.RegisterRequest{
		Email: "hr@hrms.com", Role: string(entity.RoleHRManager),
		FirstName: "Sarah", LastName: "Johnson", Position: "HR Manager", DepartmentID: &deptIDs[1],
	}, "+1234567891", "456 HR Avenue", "2021-03-15")
	if err != nil {
		return err
	}
	employeeIDs = append(employeeIDs, hr)
	if _, err := s.departments.Update(ctx, deptIDs[1], dto.UpdateDepartmentRequest{ManagerID: &hr}); err != nil {
		return fmt.Errorf("asignar responsable de RR. HH.: %w", err)
	}

	for _, e := range sampleEmployees {
		hire := time.Date(2022, time.Month(s.rnd.IntN(12)+1), s.rnd.IntN(28)+1, 0, 0, 0, 0, time.UTC)
		id, err := s.account(ctx, dto.RegisterRequest{
			Email: e.email, Role: string(entity.RoleEmployee),
			FirstName: e.firstName, LastName: e.lastName, Position: e.position, DepartmentID: &deptIDs[e.deptIdx],
		},
			fmt.Sprintf("+1%d", s.rnd.IntN(9000000000)+1000000000),
			fmt.Sprintf("%d %s Street", s.rnd.IntN(999)+1, e.lastName),
			hire.Format(entity.DateLayout),
		)
		if err != nil {
			return err
		}
		employeeIDs = append(employeeIDs, id)
	}

	if err := s.salaries(ctx, employeeIDs); err != nil {
		return err
	}
	if err := s.leaveRequests(ctx, employeeIDs); err != nil {
		return err
	}
	return s.attendance(ctx, employeeIDs)
}

// account registra cuenta + empleado y completa los datos de la ficha que el registro no recibe.
func (s *seeder) account(ctx context.Context, in dto.RegisterRequest, phone, address, hireDate string) (string, error) {
	in.Password = seedPassword
	out, err := s.auth.Register(ctx, in)
	if err != nil {
		return "", fmt.Errorf("registrar %s: %w", in.Email, err)
	}
	id := out.User.Employee.ID
	if _, err := s.employees.Update(ctx, id, dto.UpdateEmployeeRequest{
		Phone:    &phone,
		Address:  &address,
		HireDate: &hireDate,
	}); err != nil {
		return "", fmt.Errorf("completar ficha %s: %w", in.Email, err)
	}
	return id, nil
}

func (s *seeder) salaries(ctx context.Context, employeeIDs []string) error {
	for _, id := range employeeIDs {
		bonus := decimal.NewFromInt(int64(s.rnd.IntN(5000)))
		deductions := decimal.NewFromInt(int64(s.rnd.IntN(2000)))
		if _, err := s.payroll.Upsert(ctx, dto.UpsertSalaryRequest{
			EmployeeID: id,
			BaseSalary: decimal.NewFromInt(int64(s.rnd.IntN(50000) + 40000)),
			Bonus:      &bonus,
			Deductions: &deductions,
			Currency:   entity.DefaultCurrency,
		}); err != nil {
			return fmt.Errorf("nómina %s: %w", id, err)
		}
	}
	return nil
}

func (s *seeder) leaveRequests(ctx context.Context, employeeIDs []string) error {
	types := []entity.LeaveType{entity.LeaveAnnual, entity.LeaveSick, entity.LeavePersonal}
	statuses := []entity.LeaveStatus{entity.LeavePending, entity.LeaveApproved, entity.LeaveRejected}
	today := entity.DateOf(time.Now(), s.loc)
	for i := 0; i < 10; i++ {
		start := today.AddDays(s.rnd.IntN(30))
		end := start.AddDays(s.rnd.IntN(5) + 1)
		out, err := s.leaves.Create(ctx, dto.CreateLeaveRequest{
			EmployeeID: employeeIDs[s.rnd.IntN(len(employeeIDs))],
			LeaveType:  string(types[s.rnd.IntN(len(types))]),
			StartDate:  start.String(),
			EndDate:    end.String(),
			Reason:     "Sample leave request",
		})
		if err != nil {
			return fmt.Errorf("permiso %d: %w", i, err)
		}
		status := statuses[s.rnd.IntN(len(statuses))]
		if status == entity.LeavePending {
			continue
		}
		if _, err := s.leaves.UpdateStatus(ctx, out.ID, dto.UpdateLeaveStatusRequest{Status: string(status)}); err != nil {
			return fmt.Errorf("estado de permiso %d: %w", i, err)
		}
	}
	return nil
}

// attendance 7 días de registros con un 90 % de presencia.
func (s *seeder) attendance(ctx context.Context, employeeIDs []string) error {
	statuses := []entity.AttendanceStatus{
		entity.AttendancePresent, entity.AttendancePresent, entity.AttendancePresent,
		entity.AttendanceLate, entity.AttendanceAbsent,
	}
	today := entity.DateOf(time.Now(), s.loc)
	for offset := 6; offset >= 0; offset-- {
		day := today.AddDays(-offset)
		midnight := day.Midnight(s.loc)
		for _, id := range employeeIDs {
			if s.rnd.Float64() <= 0.1 {
				continue
			}
			checkIn := midnight.Add(time.Duration(8+s.rnd.IntN(2))*time.Hour + time.Duration(s.rnd.IntN(60))*time.Minute)
			checkOut := midnight.Add(time.Duration(17+s.rnd.IntN(2))*time.Hour + time.Duration(s.rnd.IntN(60))*time.Minute)
			status := statuses[s.rnd.IntN(len(statuses))]
			if _, err := s.ledger.Upsert(ctx, attendance.UpsertInput{
				EmployeeID: id,
				Date:       day,
				CheckIn:    &checkIn,
				CheckOut:   &checkOut,
				Status:     &status,
			}); err != nil {
				return fmt.Errorf("asistencia %s %s: %w", id, day, err)
			}
		}
	}
	return nil
}
