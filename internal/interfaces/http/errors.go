package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// respondError traduce un error de dominio a su status y código HTTP. Lo no reconocido es 500
// con mensaje genérico; la causa solo va al log.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		return fiber.StatusBadRequest, "ALREADY_CHECKED_IN"
	case errors.Is(err, domain.ErrNotCheckedIn):
		return fiber.StatusNotFound, "NOT_CHECKED_IN"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return fiber.StatusNotFound, "EMPLOYEE_NOT_FOUND"
	case errors.Is(err, domain.ErrDepartmentNotFound):
		return fiber.StatusNotFound, "DEPARTMENT_NOT_FOUND"
	case errors.Is(err, domain.ErrAccountNotFound):
		return fiber.StatusNotFound, "ACCOUNT_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
}

// ErrorHandler handler de errores de la app Fiber: rutas inexistentes, pánicos recuperados y
// errores que un handler devuelva sin responder.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = "INVALID_BODY"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error fiber")
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Error: fe.Message})
	}
	return respondError(c, err)
}
