package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/application/usecase"
)

// LeaveHandler solicitudes de permiso.
type LeaveHandler struct {
	uc *usecase.LeaveUseCase
}

// NewLeaveHandler construye el handler.
func NewLeaveHandler(uc *usecase.LeaveUseCase) *LeaveHandler {
	return &LeaveHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes de permiso
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "PENDING | APPROVED | REJECTED"
// @Param        employeeId  query  string  false  "Empleado"
// @Success      200  {array}  dto.LeaveResponse
// @Router       /api/leaves [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"), c.Query("employeeId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud de permiso
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.LeaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leaves/{id} [get]
func (h *LeaveHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Solicitar permiso
// @Description  Sin employeeId se usa el empleado del token. Un EMPLOYEE solo solicita para sí mismo.
// @Tags         leaves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaveRequest  true  "Solicitud"
// @Success      201   {object}  dto.LeaveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/leaves [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	employeeID, err := resolveEmployee(GetIdentity(c), in.EmployeeID)
	if err != nil {
		return respondError(c, err)
	}
	in.EmployeeID = employeeID
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar un permiso
// @Tags         leaves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la solicitud"
// @Param        body  body  dto.UpdateLeaveStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.LeaveResponse
// @Router       /api/leaves/{id}/status [patch]
func (h *LeaveHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLeaveStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud de permiso
// @Tags         leaves
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/leaves/{id} [delete]
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Solicitud eliminada"})
}
