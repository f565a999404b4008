package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResponse ventas del período (sólo pedidos pagados).
type SalesSummaryResponse struct {
	Range          string             `json:"range"`
	From           time.Time          `json:"from"`
	To             time.Time          `json:"to"`
	OrderCount     int                `json:"order_count"`
	Total          decimal.Decimal    `json:"total"`
	TotalFormatted string             `json:"total_formatted"`
	Cash           decimal.Decimal    `json:"cash"`
	MPesa          decimal.Decimal    `json:"mpesa"`
	Card           decimal.Decimal    `json:"card"`
	TopItems       []TopItemDTO       `json:"top_items"`
	StockMovements []StockMovementDTO `json:"stock_movements"`
}

// TopItemDTO ítem más vendido.
type TopItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// StockMovementDTO asiento del ledger de stock.
type StockMovementDTO struct {
	ID         string    `json:"id"`
	MenuItemID string    `json:"menu_item_id,omitempty"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	Type       string    `json:"type"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReconciliationLineDTO cuadre de un ítem.
type ReconciliationLineDTO struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	Emoji         string `json:"emoji"`
	StockQuantity int    `json:"stock_quantity"`
	Opening       int    `json:"opening"`
	Purchased     int    `json:"purchased"`
	Sold          int    `json:"sold"`
	Expected      int    `json:"expected"`
	Actual        *int   `json:"actual"`
	Difference    *int   `json:"difference"`
}

// ReconciliationResponse cuadre diario de stock.
type ReconciliationResponse struct {
	Date  string                  `json:"date"` // YYYY-MM-DD
	Lines []ReconciliationLineDTO `json:"lines"`
}

// PurchaseRequest compra de stock del día. Date vacío = hoy.
type PurchaseRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Date     string `json:"date"`
}

// CountRequest conteo físico de cierre. Date vacío = hoy.
type CountRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
	Date     string `json:"date"`
}

// AdjustmentRequest merma o devolución.
type AdjustmentRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Type     string `json:"type" validate:"required,oneof=wastage return"`
	Note     string `json:"note"`
}
