package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest alta o edición de categoría. IsKitchen nil = cocina.
type CategoryRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	IsKitchen *bool  `json:"is_kitchen"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsKitchen bool      `json:"is_kitchen"`
	Station   string    `json:"station"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMenuItemRequest alta de ítem. Los opcionales toman los valores por defecto del menú.
type CreateMenuItemRequest struct {
	Name              string          `json:"name" validate:"required,max=200"`
	Price             decimal.Decimal `json:"price_kes" validate:"required"`
	CategoryID        string          `json:"category_id" validate:"required,uuid"`
	StockQuantity     *int            `json:"stock_quantity"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	Emoji             string          `json:"emoji"`
	Available         *bool           `json:"available"`
}

// UpdateMenuItemRequest edición parcial de un ítem.
type UpdateMenuItemRequest struct {
	Name              *string          `json:"name"`
	Price             *decimal.Decimal `json:"price_kes"`
	CategoryID        *string          `json:"category_id"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Emoji             *string          `json:"emoji"`
	Available         *bool            `json:"available"`
}

// AvailabilityRequest alterna la disponibilidad.
type AvailabilityRequest struct {
	Available bool `json:"available"`
}

// MenuItemResponse salida de ítem del menú.
type MenuItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price_kes"`
	PriceFormatted    string          `json:"price_formatted"`
	CategoryID        string          `json:"category_id,omitempty"`
	CategoryName      string          `json:"category_name,omitempty"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	Emoji             string          `json:"emoji"`
	Available         bool            `json:"available"`
	IsKitchenItem     bool            `json:"is_kitchen_item"`
}
