package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	_ "github.com/jhoicas/hr-erp-api/docs"
	appanalytics "github.com/jhoicas/hr-erp-api/internal/application/analytics"
	"github.com/jhoicas/hr-erp-api/internal/application/attendance"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
	"github.com/jhoicas/hr-erp-api/internal/domain/repository"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/hr-erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/hr-erp-api/internal/interfaces/http"
	"github.com/jhoicas/hr-erp-api/pkg/config"
	"github.com/jhoicas/hr-erp-api/pkg/logger"
)

// @title        HR ERP API
// @version      1.0
// @description  Empleados, departamentos, asistencia, permisos y nómina.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	var repos storage
	switch cfg.App.StorageDriver {
	case config.StorageMemory:
		repos = memoryStorage()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = storage{
			accounts:    postgres.NewAccountRepository(pool),
			employees:   postgres.NewEmployeeRepository(pool),
			departments: postgres.NewDepartmentRepository(pool),
			attendance:  postgres.NewAttendanceRepository(pool),
			leaves:      postgres.NewLeaveRepository(pool),
			salaries:    postgres.NewSalaryRepository(pool),
			tx:          postgres.NewTxRunner(pool),
		}
	}

	authUC := auth.NewAuthUseCase(repos.accounts, repos.employees, repos.tx, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.BcryptCost, loc)
	ledger := attendance.NewLedger(repos.attendance, loc, cfg.Attendance.LateHour)
	employeeUC := usecase.NewEmployeeUseCase(repos.employees, repos.tx, loc)
	departmentUC := usecase.NewDepartmentUseCase(repos.departments, repos.employees)
	leaveUC := usecase.NewLeaveUseCase(repos.leaves)
	payrollUC := usecase.NewPayrollUseCase(repos.salaries)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.employees, repos.departments, repos.leaves, repos.attendance, loc)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "HR ERP API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Ledger:       ledger,
		EmployeeUC:   employeeUC,
		DepartmentUC: departmentUC,
		LeaveUC:      leaveUC,
		PayrollUC:    payrollUC,
		DashboardUC:  dashboardUC,
		ServiceName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// storage repositorios del driver elegido.
type storage struct {
	accounts    repository.AccountRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	attendance  repository.AttendanceRepository
	leaves      repository.LeaveRepository
	salaries    repository.SalaryRepository
	tx          repository.TxRunner
}

func memoryStorage() storage {
	s := memory.NewStore()
	return storage{
		accounts:    s.Accounts(),
		employees:   s.Employees(),
		departments: s.Departments(),
		attendance:  s.Attendance(),
		leaves:      s.Leaves(),
		salaries:    s.Salaries(),
		tx:          s.TxRunner(),
	}
}
