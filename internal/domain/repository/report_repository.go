package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agregados de pedidos pagados en un período.
type SalesTotals struct {
	OrderCount int
	Total      decimal.Decimal
	Cash       decimal.Decimal
	MPesa      decimal.Decimal
	Card       decimal.Decimal
}

// ReportRepository consultas de sólo lectura para el dashboard.
type ReportRepository interface {
	// SalesTotals usa COALESCE para devolver cero si no hay ventas en el período.
	SalesTotals(ctx context.Context, orgID string, from, to time.Time) (SalesTotals, error)
}
