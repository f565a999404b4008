package entity

import "time"

// Tipos de transacción de stock.
const (
	StockTxPurchase = "purchase"
	StockTxSale     = "sale"
	StockTxReturn   = "return"
	StockTxWastage  = "wastage"
)

// StockTransaction asiento del ledger de stock. Quantity es negativa en salidas.
type StockTransaction struct {
	ID           string
	OrgID        string
	MenuItemID   string
	MenuItemName string // sólo lectura
	Quantity     int
	Type         string
	Note         string
	CreatedAt    time.Time
}

// StockPurchase compra registrada para un día (reporte de cuadre).
type StockPurchase struct {
	ID        string
	OrgID     string
	ItemID    string
	Quantity  int
	Date      time.Time
	CreatedAt time.Time
}

// StockCount conteo físico de cierre; único por (org, ítem, fecha).
type StockCount struct {
	OrgID    string
	ItemID   string
	Quantity int
	Date     time.Time
}
