package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
)

// DepartmentHandler maneja las peticiones HTTP de departamentos.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar departamentos con su plantilla
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener departamento con sus empleados
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del departamento"
// @Success      200  {object}  dto.DepartmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [get]
func (h *DepartmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepartmentRequest  true  "Datos del departamento"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDepartmentRequest
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
// @Summary      Actualizar departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del departamento"
// @Param        body  body  dto.UpdateDepartmentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DepartmentResponse
// @Router       /api/departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDepartmentRequest
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
// @Summary      Eliminar departamento
// @Tags         departments
// @Security     Bearer
// @Param        id   path  string  true  "ID del departamento"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Departamento eliminado"})
}
