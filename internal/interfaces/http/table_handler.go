package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
)

// TableHandler tablero de mesas.
type TableHandler struct {
	uc  *usecase.TableUseCase
	log zerolog.Logger
}

// NewTableHandler construye el handler.
func NewTableHandler(uc *usecase.TableUseCase, log zerolog.Logger) *TableHandler {
	return &TableHandler{uc: uc, log: log}
}

// Board godoc
// @Summary      Mesas con su estado (libre, ocupada, comida lista)
// @Tags         tables
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.TableResponse]
// @Router       /api/tables [get]
func (h *TableHandler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(c.Context(), GetOrgID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Create godoc
// @Summary      Crear mesa
// @Tags         tables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTableRequest  true  "table_number"
// @Success      201   {object}  dto.TableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tables [post]
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar mesa
// @Tags         tables
// @Security     Bearer
// @Param        id  path  string  true  "ID de la mesa"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tables/{id} [delete]
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrgID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
