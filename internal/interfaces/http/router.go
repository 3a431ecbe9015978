package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/hr-erp-api/internal/application/analytics"
	"github.com/jhoicas/hr-erp-api/internal/application/attendance"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Ledger       *attendance.Ledger
	EmployeeUC   *usecase.EmployeeUseCase
	DepartmentUC *usecase.DepartmentUseCase
	LeaveUC      *usecase.LeaveUseCase
	PayrollUC    *usecase.PayrollUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)

	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth (register y login públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", requireAuth, authHandler.Profile)

	// Rutas protegidas (requieren Bearer Token). El middleware va en cada grupo para que
	// una ruta inexistente bajo /api siga respondiendo 404.
	managers := RequireRole(auth.Managers...)
	adminOnly := RequireRole(auth.AdminOnly...)

	// Attendance
	att := api.Group("/attendance", requireAuth)
	attendanceHandler := NewAttendanceHandler(deps.Ledger)
	att.Get("/", attendanceHandler.List)
	att.Post("/check-in", attendanceHandler.CheckIn)
	att.Post("/check-out", attendanceHandler.CheckOut)
	att.Post("/", managers, attendanceHandler.Upsert)

	// Employees
	employees := api.Group("/employees", requireAuth)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Post("/", managers, employeeHandler.Create)
	employees.Put("/:id", managers, employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)

	// Departments
	departments := api.Group("/departments", requireAuth)
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id", departmentHandler.GetByID)
	departments.Post("/", managers, departmentHandler.Create)
	departments.Put("/:id", managers, departmentHandler.Update)
	departments.Delete("/:id", adminOnly, departmentHandler.Delete)

	// Leaves
	leaves := api.Group("/leaves", requireAuth)
	leaveHandler := NewLeaveHandler(deps.LeaveUC)
	leaves.Get("/", leaveHandler.List)
	leaves.Get("/:id", leaveHandler.GetByID)
	leaves.Post("/", leaveHandler.Create)
	leaves.Patch("/:id/status", managers, leaveHandler.UpdateStatus)
	leaves.Delete("/:id", managers, leaveHandler.Delete)

	// Payroll (solo RR. HH. y admin)
	payroll := api.Group("/payroll", requireAuth, managers)
	payrollHandler := NewPayrollHandler(deps.PayrollUC)
	payroll.Get("/", payrollHandler.List)
	payroll.Get("/summary", payrollHandler.Summary)
	payroll.Get("/employee/:employeeId", payrollHandler.GetByEmployee)
	payroll.Post("/", payrollHandler.Upsert)

	// Dashboard
	dashboard := api.Group("/dashboard", requireAuth)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
}
