package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
)

// AuthHandler maneja registro, login y perfil.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar cuenta y empleado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, firstName, lastName, role"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Perfil de la cuenta autenticada
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetAccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
