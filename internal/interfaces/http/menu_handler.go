package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
)

// MenuHandler categorías e ítems del menú.
type MenuHandler struct {
	uc  *usecase.MenuUseCase
	log zerolog.Logger
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase, log zerolog.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, log: log}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.CategoryResponse]
// @Router       /api/menu/categories [get]
func (h *MenuHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context(), GetOrgID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "name, is_kitchen"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menu/categories [post]
func (h *MenuHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "name, is_kitchen"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/categories/{id} [put]
func (h *MenuHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCategory(c.Context(), GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Tags         menu
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/categories/{id} [delete]
func (h *MenuHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), GetOrgID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListItems godoc
// @Summary      Listar ítems del menú
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.MenuItemResponse]
// @Router       /api/menu/items [get]
func (h *MenuHandler) ListItems(c *fiber.Ctx) error {
	return h.listItems(c, false)
}

// ListAvailable godoc
// @Summary      Ítems disponibles para tomar pedidos
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.MenuItemResponse]
// @Router       /api/menu/items/available [get]
func (h *MenuHandler) ListAvailable(c *fiber.Ctx) error {
	return h.listItems(c, true)
}

func (h *MenuHandler) listItems(c *fiber.Ctx, onlyAvailable bool) error {
	out, err := h.uc.ListItems(c.Context(), GetOrgID(c), onlyAvailable)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// LowStock godoc
// @Summary      Ítems con stock bajo
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.MenuItemResponse]
// @Router       /api/menu/items/low-stock [get]
func (h *MenuHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), GetOrgID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// CreateItem godoc
// @Summary      Crear ítem del menú
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/items [post]
func (h *MenuHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateItem(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar ítem del menú
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del ítem"
// @Param        body  body  dto.UpdateMenuItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/items/{id} [put]
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItem(c.Context(), GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetAvailability godoc
// @Summary      Activar o pausar un ítem
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del ítem"
// @Param        body  body  dto.AvailabilityRequest  true  "available"
// @Success      200   {object}  dto.MenuItemResponse
// @Router       /api/menu/items/{id}/availability [patch]
func (h *MenuHandler) SetAvailability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetAvailability(c.Context(), GetOrgID(c), c.Params("id"), in.Available)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar ítem del menú
// @Tags         menu
// @Security     Bearer
// @Param        id  path  string  true  "ID del ítem"
// @Success      204
// @Router       /api/menu/items/{id} [delete]
func (h *MenuHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), GetOrgID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
