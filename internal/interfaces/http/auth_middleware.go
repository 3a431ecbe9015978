package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hr-erp-api/internal/application/auth"
	"github.com/jhoicas/hr-erp-api/internal/application/dto"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
	"github.com/rs/zerolog/log"
)

// Claves de Locals donde el middleware deja la identidad del token.
const (
	LocalAccountID  = "account_id"
	LocalEmployeeID = "employee_id"
	LocalRole       = "role"
)

// TokenVerifier valida un bearer token. Lo implementa *auth.AuthUseCase.
type TokenVerifier interface {
	Verify(token string) (entity.Identity, error)
}

// AuthMiddleware exige "Authorization: Bearer <token>" válido y carga la identidad en Locals.
// Token ausente, malformado o expirado: 401.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			log.Debug().Str("path", c.Path()).Str("reason", "missing").Msg("acceso sin token")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "MISSING_TOKEN",
				Error: "Access token required",
			})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			log.Debug().Str("path", c.Path()).Str("reason", "malformed").Msg("cabecera Authorization inválida")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "INVALID_TOKEN",
				Error: "formato esperado: Bearer <token>",
			})
		}

		id, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			reason := "invalid"
			if auth.IsTokenExpired(err) {
				reason = "expired"
			}
			log.Debug().Str("path", c.Path()).Str("reason", reason).Msg("token rechazado")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "INVALID_TOKEN",
				Error: "Invalid or expired token",
			})
		}

		c.Locals(LocalAccountID, id.AccountID)
		c.Locals(LocalEmployeeID, id.EmployeeID)
		c.Locals(LocalRole, string(id.Role))
		return c.Next()
	}
}

// RequireRole autoriza solo a las identidades cuyo rol esté en roles. Debe ir después de
// AuthMiddleware. Sin rol en Locals: 401; rol no admitido: 403.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "MISSING_ROLE",
				Error: "el token no contiene rol",
			})
		}
		if err := auth.Authorize(id, roles...); err != nil {
			log.Debug().Str("account_id", id.AccountID).Str("role", string(id.Role)).Str("path", c.Path()).Msg("rol no autorizado")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "FORBIDDEN",
				Error: "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad cargada por AuthMiddleware (vacía si no hay).
func GetIdentity(c *fiber.Ctx) entity.Identity {
	return entity.Identity{
		AccountID:  localString(c, LocalAccountID),
		EmployeeID: localString(c, LocalEmployeeID),
		Role:       entity.Role(localString(c, LocalRole)),
	}
}

// GetAccountID devuelve el account_id del token.
func GetAccountID(c *fiber.Ctx) string {
	return localString(c, LocalAccountID)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return v
	}
	return ""
}
