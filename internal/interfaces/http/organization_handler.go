package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
)

// OrganizationHandler ajustes del restaurante.
type OrganizationHandler struct {
	uc  *usecase.OrganizationUseCase
	log zerolog.Logger
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase, log zerolog.Logger) *OrganizationHandler {
	return &OrganizationHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Organización actual
// @Tags         organization
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationResponse
// @Router       /api/organization [get]
func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetOrgID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ajustes (nombre, dirección, teléfono, pie de recibo)
// @Tags         organization
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateOrganizationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organization [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSettings(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
