package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// StockRepository ledger de movimientos, compras y conteos físicos.
// Usado dentro de transacciones junto a MenuItemRepository.AdjustStock.
type StockRepository interface {
	AddTransaction(ctx context.Context, tx *entity.StockTransaction) error
	// ListTransactions movimientos con created_at en [from, to), descendentes.
	ListTransactions(ctx context.Context, orgID string, from, to time.Time) ([]*entity.StockTransaction, error)
	AddPurchase(ctx context.Context, p *entity.StockPurchase) error
	PurchasedByItem(ctx context.Context, orgID string, date time.Time) (map[string]int, error)
	// UpsertCount inserta o reemplaza el conteo de (org, ítem, fecha).
	UpsertCount(ctx context.Context, c *entity.StockCount) error
	CountsByItem(ctx context.Context, orgID string, date time.Time) (map[string]int, error)
}
