package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/attendance"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// AttendanceHandler expone el ledger de asistencia.
type AttendanceHandler struct {
	ledger *attendance.Ledger
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(ledger *attendance.Ledger) *AttendanceHandler {
	return &AttendanceHandler{ledger: ledger}
}

// List godoc
// @Summary      Consultar asistencia
// @Description  date tiene prioridad sobre startDate/endDate.
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        employeeId  query  string  false  "Empleado"
// @Param        date        query  string  false  "YYYY-MM-DD"
// @Param        startDate   query  string  false  "YYYY-MM-DD"
// @Param        endDate     query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.AttendanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	var q dto.AttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "parámetros inválidos"})
	}
	f := entity.AttendanceFilter{EmployeeID: q.EmployeeID}
	var err error
	if f.Date, err = optionalDate(q.Date, "date"); err != nil {
		return respondError(c, err)
	}
	if f.From, err = optionalDate(q.StartDate, "startDate"); err != nil {
		return respondError(c, err)
	}
	if f.To, err = optionalDate(q.EndDate, "endDate"); err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.Query(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromAttendanceList(list))
}

// CheckIn godoc
// @Summary      Registrar entrada
// @Description  Sin employeeId se usa el empleado del token. Un EMPLOYEE solo puede registrarse a sí mismo.
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckRequest  false  "employeeId opcional"
// @Success      201   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.ledger.CheckIn(c.UserContext(), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAttendance(rec))
}

// CheckOut godoc
// @Summary      Registrar salida
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckRequest  false  "employeeId opcional"
// @Success      200   {object}  dto.AttendanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.ledger.CheckOut(c.UserContext(), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromAttendance(rec))
}

// Upsert godoc
// @Summary      Crear o corregir un registro de asistencia
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertAttendanceRequest  true  "employeeId y date obligatorios"
// @Success      200   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/attendance [post]
func (h *AttendanceHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertAttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	date, err := entity.ParseDate(in.Date)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: date: %v", domain.ErrInvalidInput, err))
	}
	input := attendance.UpsertInput{
		EmployeeID: in.EmployeeID,
		Date:       date,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Notes:      in.Notes,
	}
	if in.Status != nil {
		st, ok := entity.ParseAttendanceStatus(*in.Status)
		if !ok {
			return respondError(c, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, *in.Status))
		}
		input.Status = &st
	}
	rec, err := h.ledger.Upsert(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromAttendance(rec))
}

// targetEmployee resuelve el empleado sobre el que se actúa: el del cuerpo o, si falta, el
// del token. Un EMPLOYEE no puede actuar por otro.
func targetEmployee(c *fiber.Ctx) (string, error) {
	var in dto.CheckRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return "", fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
		}
	}
	return resolveEmployee(GetIdentity(c), in.EmployeeID)
}

func resolveEmployee(id entity.Identity, requested string) (string, error) {
	if requested == "" {
		if id.EmployeeID == "" {
			return "", fmt.Errorf("%w: employeeId es obligatorio", domain.ErrInvalidInput)
		}
		return id.EmployeeID, nil
	}
	if !auth.CanActFor(id, requested) {
		return "", fmt.Errorf("%w: solo puede operar sobre su propio registro", domain.ErrForbidden)
	}
	return requested, nil
}

func optionalDate(s, field string) (*entity.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, field, err)
	}
	return &d, nil
}
