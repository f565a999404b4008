package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
)

// TeamHandler gestión del personal.
type TeamHandler struct {
	uc  *usecase.TeamUseCase
	log zerolog.Logger
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase, log zerolog.Logger) *TeamHandler {
	return &TeamHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar personal
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ProfileResponse]
// @Router       /api/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetOrgID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Invite godoc
// @Summary      Invitar miembro
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRequest  true  "email, role"
// @Success      201   {object}  dto.InviteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Role == "" {
		return validation(c, "email y role son requeridos")
	}
	out, err := h.uc.Invite(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar rol
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del miembro"
// @Param        body  body  dto.UpdateRoleRequest  true  "role"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/team/{id}/role [patch]
func (h *TeamHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateRole(c.Context(), GetOrgID(c), c.Params("id"), in.Role)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar miembro de la organización
// @Tags         team
// @Security     Bearer
// @Param        id  path  string  true  "ID del miembro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [delete]
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), GetOrgID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
