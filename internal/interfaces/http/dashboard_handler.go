package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/analytics"
)

// DashboardHandler maneja el resumen del panel de administración.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve ventas del día y del mes, pedidos activos, mesas, menú y personal.
// GET /api/dashboard
//
// No requiere parámetros; las fechas se calculan en el servidor (hora de Nairobi).
//
// @Summary      Resumen del panel
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetOrgID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
