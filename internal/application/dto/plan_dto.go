package dto

import "github.com/shopspring/decimal"

// PlanResponse plan comercial.
type PlanResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	PriceKES       decimal.Decimal `json:"price_kes"`
	PriceFormatted string          `json:"price_formatted"`
	Features       []string        `json:"features"`
	Highlight      bool            `json:"highlight"`
}
