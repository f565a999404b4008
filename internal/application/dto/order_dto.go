package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// CartLineRequest línea del carrito: el precio se resuelve en el servidor.
type CartLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=1"`
}

// PlaceOrderRequest carrito completo de la mesa (reemplaza la cuenta abierta).
type PlaceOrderRequest struct {
	Items []CartLineRequest `json:"items" validate:"required,min=1"`
}

// OrderResponse pedido con su estado de preparación y pago.
type OrderResponse struct {
	ID                string             `json:"id"`
	TableID           string             `json:"table_id,omitempty"`
	TableNumber       string             `json:"table_number,omitempty"`
	Items             []entity.OrderItem `json:"items"`
	TotalPrice        decimal.Decimal    `json:"total_price"`
	TotalFormatted    string             `json:"total_formatted"`
	Status            string             `json:"status"`
	KitchenStatus     string             `json:"kitchen_status"`
	BarStatus         string             `json:"bar_status"`
	PaymentMethod     string             `json:"payment_method,omitempty"`
	AmountTendered    *decimal.Decimal   `json:"amount_tendered,omitempty"`
	ChangeDue         *decimal.Decimal   `json:"change_due,omitempty"`
	TransactionID     string             `json:"transaction_id,omitempty"`
	CheckoutRequestID string             `json:"checkout_request_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	PaidAt            *time.Time         `json:"paid_at,omitempty"`
}

// PlaceOrderResponse resultado de enviar el carrito.
type PlaceOrderResponse struct {
	Order   OrderResponse      `json:"order"`
	Created bool               `json:"created"` // false = se acumuló en la cuenta abierta
	Added   []entity.OrderItem `json:"added"`   // lo que se envió a cocina/barra
}

// StationOrderResponse pedido visto desde una estación: sólo sus ítems.
type StationOrderResponse struct {
	OrderID       string             `json:"order_id"`
	TableNumber   string             `json:"table_number"`
	Items         []entity.OrderItem `json:"items"`
	StationStatus string             `json:"station_status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// OfflineID identificador que el dispositivo asigna al pedido encolado. Los clientes web
// envían Date.now() como número; también se acepta texto.
type OfflineID string

func (id *OfflineID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = OfflineID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("offline_id: se esperaba texto o número: %w", err)
	}
	*id = OfflineID(n.String())
	return nil
}

// OfflineOrderRequest pedido encolado sin conexión.
type OfflineOrderRequest struct {
	OfflineID OfflineID         `json:"offline_id"`
	TableID   string            `json:"table_id"`
	Items     []CartLineRequest `json:"items"`
	CreatedAt *time.Time        `json:"created_at"`
}

// SyncRequest cola offline completa del dispositivo.
type SyncRequest struct {
	Orders []OfflineOrderRequest `json:"orders" validate:"required"`
}

// SyncError pedido que no se pudo sincronizar (sigue en la cola del cliente).
type SyncError struct {
	OfflineID string `json:"offline_id"`
	Message   string `json:"message"`
}

// SyncResponse resultado del reenvío.
type SyncResponse struct {
	Synced   int         `json:"synced"`
	Failed   int         `json:"failed"`
	OrderIDs []string    `json:"order_ids"`
	Errors   []SyncError `json:"errors"`
}
