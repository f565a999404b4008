package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/analytics"
	"github.com/jhoicas/stasha-pos/internal/application/dto"
)

// ReportHandler ventas, movimientos de stock y conciliación.
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Sales godoc
// @Summary      Resumen de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "today | month"  default(today)
// @Success      200    {object}  dto.SalesSummaryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.SalesSummary(c.Context(), GetOrgID(c), c.Query("range", analytics.RangeToday))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// StockMovements godoc
// @Summary      Movimientos de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        to    query  string  false  "YYYY-MM-DD inclusive (por defecto from)"
// @Success      200   {object}  dto.ListResponse[dto.StockMovementDTO]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/stock-movements [get]
func (h *ReportHandler) StockMovements(c *fiber.Ctx) error {
	out, err := h.uc.StockMovements(c.Context(), GetOrgID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Reconciliation godoc
// @Summary      Conciliación diaria de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.ReconciliationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/reconciliation [get]
func (h *ReportHandler) Reconciliation(c *fiber.Ctx) error {
	out, err := h.uc.Reconciliation(c.Context(), GetOrgID(c), c.Query("date"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddPurchase godoc
// @Summary      Registrar compra (entrada de stock)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "item_id, quantity, date"
// @Success      201   {object}  dto.StockMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/purchases [post]
func (h *ReportHandler) AddPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPurchase(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubmitCount godoc
// @Summary      Registrar conteo físico
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CountRequest  true  "item_id, quantity, date"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/counts [post]
func (h *ReportHandler) SubmitCount(c *fiber.Ctx) error {
	var in dto.CountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SubmitCount(c.Context(), GetOrgID(c), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "conteo registrado"})
}

// RecordAdjustment godoc
// @Summary      Registrar merma o devolución
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "item_id, quantity, type (wastage|return), note"
// @Success      201   {object}  dto.StockMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/adjustments [post]
func (h *ReportHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordAdjustment(c.Context(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
