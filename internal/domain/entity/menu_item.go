package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto al crear un ítem del menú.
const (
	DefaultLowStockThreshold = 10
	DefaultEmoji             = "🍽️"
)

// MenuItem representa un producto vendible del menú.
// IsKitchenItem se deriva de la categoría (sin categoría se enruta a cocina).
type MenuItem struct {
	ID                string
	OrgID             string
	CategoryID        string // vacío = sin categoría
	CategoryName      string
	Name              string
	Price             decimal.Decimal
	StockQuantity     int
	LowStockThreshold int
	Emoji             string
	Available         bool
	IsKitchenItem     bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock informa si el stock está en o por debajo del umbral.
func (m *MenuItem) IsLowStock() bool {
	return m.StockQuantity <= m.LowStockThreshold
}
