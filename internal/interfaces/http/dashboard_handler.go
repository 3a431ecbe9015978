package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/hr-erp-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve contadores, plantilla por departamento, tendencia de asistencia de 7 días
// y los últimos permisos.
// GET /api/dashboard/stats
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
