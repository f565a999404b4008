package entity

import "github.com/shopspring/decimal"

// Plan suscripción comercial mostrada en la página pública.
type Plan struct {
	ID        string
	Name      string
	PriceKES  decimal.Decimal
	Features  []string
	Highlight bool
}
