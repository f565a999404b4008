package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/ordering"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// OrderHandler toma de pedidos, tableros de estación y sincronización offline.
type OrderHandler struct {
	uc  *ordering.OrderUseCase
	log zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderUseCase, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// ActiveOrder godoc
// @Summary      Cuenta abierta de la mesa
// @Description  204 si la mesa está libre.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la mesa"
// @Success      200  {object}  dto.OrderResponse
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/order [get]
func (h *OrderHandler) ActiveOrder(c *fiber.Ctx) error {
	out, err := h.uc.ActiveOrder(c.Context(), GetOrgID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// PlaceOrder godoc
// @Summary      Enviar carrito de la mesa
// @Description  Sin cuenta abierta crea el pedido; con cuenta abierta la reemplaza y sólo lo agregado va a cocina/barra.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la mesa"
// @Param        body  body  dto.PlaceOrderRequest  true  "Carrito"
// @Success      201   {object}  dto.PlaceOrderResponse
// @Success      200   {object}  dto.PlaceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tables/{id}/order [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PlaceOrder(c.Context(), GetOrgID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// Sync godoc
// @Summary      Sincronizar cola offline
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncRequest  true  "Pedidos capturados sin conexión"
// @Success      200   {object}  dto.SyncResponse
// @Router       /api/orders/sync [post]
func (h *OrderHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SyncOffline(c.Context(), GetOrgID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// StationBoard godoc
// @Summary      Pedidos de la estación (kitchen | bar)
// @Tags         stations
// @Security     Bearer
// @Produce      json
// @Param        station  path  string  true  "kitchen o bar"
// @Success      200      {object}  dto.ListResponse[dto.StationOrderResponse]
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/stations/{station}/orders [get]
func (h *OrderHandler) StationBoard(c *fiber.Ctx) error {
	out, err := h.uc.StationBoard(c.Context(), GetOrgID(c), c.Params("station"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// MarkReady godoc
// @Summary      Marcar la estación como lista
// @Tags         stations
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del pedido"
// @Param        station  path  string  true  "kitchen o bar"
// @Success      200      {object}  dto.OrderResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/stations/{station}/ready [post]
func (h *OrderHandler) MarkReady(c *fiber.Ctx) error {
	out, err := h.uc.MarkStationReady(c.Context(), GetOrgID(c), c.Params("id"), c.Params("station"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RequireStationRole aplica los roles de cocina o barra según el parámetro :station.
// Una estación desconocida se deja pasar para que el caso de uso responda 400.
func RequireStationRole() fiber.Handler {
	kitchen := RequireRole(RolesKitchen...)
	bar := RequireRole(RolesBar...)
	return func(c *fiber.Ctx) error {
		switch c.Params("station") {
		case entity.StationKitchen:
			return kitchen(c)
		case entity.StationBar:
			return bar(c)
		}
		return c.Next()
	}
}
