package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
)

// EmployeeHandler maneja las peticiones HTTP de empleados (protegido).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "ACTIVE | INACTIVE | ON_LEAVE"
// @Param        departmentId  query  string  false  "Departamento"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"), c.Query("departmentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado
// @Description  Elimina en cascada su cuenta, asistencia, permisos y nómina.
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Empleado eliminado"})
}
