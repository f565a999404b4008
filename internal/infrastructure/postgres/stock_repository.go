package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger de stock, compras y conteos sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// AddTransaction registra un asiento del ledger.
func (r *StockRepo) AddTransaction(ctx context.Context, t *entity.StockTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_transactions (id, org_id, menu_item_id, quantity, type, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.OrgID, nullIfEmpty(t.MenuItemID), t.Quantity, t.Type, t.Note, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListTransactions movimientos del rango con el nombre del ítem, más recientes primero.
func (r *StockRepo) ListTransactions(ctx context.Context, orgID string, from, to time.Time) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.org_id, s.menu_item_id, COALESCE(m.name, ''), s.quantity, s.type, s.note, s.created_at
		FROM stock_transactions s
		LEFT JOIN menu_items m ON m.id = s.menu_item_id
		WHERE s.org_id = $1 AND s.created_at >= $2 AND s.created_at < $3
		ORDER BY s.created_at DESC`, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		var itemID *string
		if err := rows.Scan(&t.ID, &t.OrgID, &itemID, &t.MenuItemName, &t.Quantity, &t.Type, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		t.MenuItemID = deref(itemID)
		list = append(list, &t)
	}
	return list, rows.Err()
}

// AddPurchase registra una compra del día.
func (r *StockRepo) AddPurchase(ctx context.Context, p *entity.StockPurchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_purchases (id, org_id, item_id, quantity, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.OrgID, p.ItemID, p.Quantity, dayOnly(p.Date), p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidID(err) {
			return fmt.Errorf("insert stock purchase: ítem inexistente: %w", err)
		}
		return fmt.Errorf("insert stock purchase: %w", err)
	}
	return nil
}

// PurchasedByItem suma compras del día por ítem.
func (r *StockRepo) PurchasedByItem(ctx context.Context, orgID string, date time.Time) (map[string]int, error) {
	return r.sumByItem(ctx,
		`SELECT item_id::TEXT, SUM(quantity)::INTEGER FROM stock_purchases WHERE org_id = $1 AND date = $2 GROUP BY item_id`,
		orgID, dayOnly(date))
}

// UpsertCount inserta o reemplaza el conteo físico del día.
func (r *StockRepo) UpsertCount(ctx context.Context, c *entity.StockCount) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_counts (org_id, item_id, date, quantity) VALUES ($1, $2, $3, $4)
		ON CONFLICT (org_id, item_id, date) DO UPDATE SET quantity = EXCLUDED.quantity`,
		c.OrgID, c.ItemID, dayOnly(c.Date), c.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock count: %w", err)
	}
	return nil
}

// CountsByItem conteos físicos del día por ítem.
func (r *StockRepo) CountsByItem(ctx context.Context, orgID string, date time.Time) (map[string]int, error) {
	return r.sumByItem(ctx,
		`SELECT item_id::TEXT, quantity FROM stock_counts WHERE org_id = $1 AND date = $2`,
		orgID, dayOnly(date))
}

func (r *StockRepo) sumByItem(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock by item: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var id string
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scan stock by item: %w", err)
		}
		out[id] = qty
	}
	return out, rows.Err()
}
