package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
)

// PayrollHandler líneas salariales (solo RR. HH. y admin).
type PayrollHandler struct {
	uc *usecase.PayrollUseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *usecase.PayrollUseCase) *PayrollHandler {
	return &PayrollHandler{uc: uc}
}

// List godoc
// @Summary      Listar nómina
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SalaryResponse
// @Router       /api/payroll [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de nómina
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PayrollSummaryResponse
// @Router       /api/payroll/summary [get]
func (h *PayrollHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByEmployee godoc
// @Summary      Línea salarial de un empleado
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path  string  true  "ID del empleado"
// @Success      200  {object}  dto.SalaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payroll/employee/{employeeId} [get]
func (h *PayrollHandler) GetByEmployee(c *fiber.Ctx) error {
	out, err := h.uc.GetByEmployee(c.UserContext(), c.Params("employeeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar línea salarial
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertSalaryRequest  true  "Salario base, bonus y deducciones"
// @Success      200   {object}  dto.SalaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payroll [post]
func (h *PayrollHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertSalaryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
