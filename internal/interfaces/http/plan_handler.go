package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
)

// PlanHandler planes de suscripción (público).
type PlanHandler struct {
	uc  *usecase.PlanUseCase
	log zerolog.Logger
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc *usecase.PlanUseCase, log zerolog.Logger) *PlanHandler {
	return &PlanHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar planes
// @Tags         plans
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PlanResponse]
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}
