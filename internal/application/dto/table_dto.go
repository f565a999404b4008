package dto

import "github.com/shopspring/decimal"

// CreateTableRequest alta de mesa.
type CreateTableRequest struct {
	TableNumber string `json:"table_number" validate:"required,max=20"`
}

// TableResponse mesa en el tablero del mesero.
type TableResponse struct {
	ID           string          `json:"id"`
	TableNumber  string          `json:"table_number"`
	DisplayName  string          `json:"display_name"`
	Status       string          `json:"status"` // open | occupied
	OrderID      string          `json:"order_id,omitempty"`
	CurrentBill  decimal.Decimal `json:"current_bill"`
	HasReadyFood bool            `json:"has_ready_food"`
}
