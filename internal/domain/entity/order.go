package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending = "pending"
	OrderStatusReady   = "ready"
	OrderStatusPaid    = "paid"
)

// Estados por estación.
const (
	StationStatusPending = "pending"
	StationStatusReady   = "ready"
)

// Métodos de pago aceptados.
const (
	PaymentCash  = "Cash"
	PaymentMPesa = "M-Pesa"
	PaymentCard  = "Card"
)

// OrderItem línea del pedido. Se persiste como JSONB dentro de orders.items.
type OrderItem struct {
	MenuItemID    string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price_kes"`
	Emoji         string          `json:"emoji,omitempty"`
	Quantity      int             `json:"quantity"`
	IsKitchenItem bool            `json:"is_kitchen_item"`
}

// Subtotal precio × cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order cuenta abierta (o cerrada) de una mesa.
type Order struct {
	ID                string
	OrgID             string
	TableID           string
	TableNumber       string // sólo lectura (join con tables)
	Items             []OrderItem
	TotalPrice        decimal.Decimal
	Status            string
	KitchenStatus     string
	BarStatus         string
	PaymentMethod     string
	AmountTendered    decimal.Decimal
	ChangeDue         decimal.Decimal
	TransactionID     string
	CheckoutRequestID string
	OfflineID         string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PaidAt            *time.Time
}

// IsActive informa si el pedido sigue abierto en la mesa.
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusReady
}

// StationStatus devuelve el estado de la estación indicada.
func (o *Order) StationStatus(station string) string {
	if station == StationBar {
		return o.BarStatus
	}
	return o.KitchenStatus
}
