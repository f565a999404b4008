package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/payment"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
)

// PaymentHandler cobro, STK push, callback de la pasarela y recibo.
type PaymentHandler struct {
	uc  *payment.PaymentUseCase
	log zerolog.Logger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.PaymentUseCase, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log}
}

// Pay godoc
// @Summary      Cobrar pedido
// @Description  Cash exige amount_tendered >= total. Un pedido aún en preparación exige force=true.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID del pedido"
// @Param        body  body  dto.PayRequest  true  "payment_method, amount_tendered, force"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pay [post]
func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.PaymentMethod == "" {
		return validation(c, "payment_method es requerido")
	}
	out, err := h.uc.Pay(c.Context(), GetOrgID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MobileMoney godoc
// @Summary      Iniciar pago M-Pesa (STK push)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del pedido"
// @Param        body  body  dto.MobileMoneyRequest  true  "phone"
// @Success      200   {object}  dto.MobileMoneyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/mpesa [post]
func (h *PaymentHandler) MobileMoney(c *fiber.Ctx) error {
	var in dto.MobileMoneyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Phone == "" {
		return validation(c, "phone es requerido")
	}
	out, err := h.uc.InitiateMobileMoney(c.Context(), GetOrgID(c), c.Params("id"), in.Phone)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Callback godoc
// @Summary      Callback de M-Pesa (Daraja)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        orderId  query  string  true   "ID del pedido"
// @Param        token    query  string  false  "Token compartido del callback"
// @Success      200      {object}  dto.CallbackResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Router       /api/mpesa/callback [post]
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	out, err := h.uc.HandleCallback(c.Context(), c.Query("orderId"), c.Query("token"), c.Body())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF del pedido pagado
// @Tags         payments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.Receipt(c.Context(), GetOrgID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="receipt-`+pos.ShortRef(id, 8)+`.pdf"`)
	return c.Send(doc)
}
