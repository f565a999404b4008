package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.org_id, o.table_id, COALESCE(t.table_number, ''), o.items, o.total_price, o.status,
		o.kitchen_status, o.bar_status, o.payment_method, o.amount_tendered, o.change_due, o.transaction_id,
		o.checkout_request_id, o.offline_id, o.created_by, o.created_at, o.updated_at, o.paid_at
	FROM orders o
	LEFT JOIN tables t ON t.id = o.table_id`

// OrderRepo implementación de OrderRepository sobre PostgreSQL. items se guarda como JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido nuevo. Un offline_id repetido se reporta como ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, org_id, table_id, items, total_price, status, kitchen_status, bar_status,
			offline_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrgID, nullIfEmpty(o.TableID), itemsOrEmpty(o.Items), o.TotalPrice, o.Status, o.KitchenStatus,
		o.BarStatus, nullIfEmpty(o.OfflineID), nullIfEmpty(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido de la organización.
func (r *OrderRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.org_id = $1 AND o.id = $2`, orgID, id)
}

// FindByID obtiene un pedido sin filtrar por organización.
func (r *OrderRepo) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.id = $1`, id)
}

// GetActiveByTable devuelve el último pedido pending|ready de la mesa.
func (r *OrderRepo) GetActiveByTable(ctx context.Context, orgID, tableID string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+`
		WHERE o.org_id = $1 AND o.table_id = $2 AND o.status IN ('pending', 'ready')
		ORDER BY o.created_at DESC LIMIT 1`, orgID, tableID)
}

// GetByOfflineID busca un pedido sincronizado desde la cola offline.
func (r *OrderRepo) GetByOfflineID(ctx context.Context, orgID, offlineID string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.org_id = $1 AND o.offline_id = $2`, orgID, offlineID)
}

// UpdateItems reemplaza ítems, total y estados. Sólo toca pedidos abiertos.
func (r *OrderRepo) UpdateItems(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET items = $3, total_price = $4, status = $5, kitchen_status = $6, bar_status = $7, updated_at = $8
		WHERE org_id = $1 AND id = $2 AND status <> 'paid'`,
		o.OrgID, o.ID, itemsOrEmpty(o.Items), o.TotalPrice, o.Status, o.KitchenStatus, o.BarStatus, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order items: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderClosed
	}
	return nil
}

// UpdateStatus persiste estado general y por estación.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $3, kitchen_status = $4, bar_status = $5, updated_at = $6
		WHERE org_id = $1 AND id = $2 AND status <> 'paid'`,
		o.OrgID, o.ID, o.Status, o.KitchenStatus, o.BarStatus, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderClosed
	}
	return nil
}

// SetCheckoutRequest guarda el CheckoutRequestID devuelto por el STK push.
func (r *OrderRepo) SetCheckoutRequest(ctx context.Context, orgID, id, checkoutRequestID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET checkout_request_id = $3, updated_at = now() WHERE org_id = $1 AND id = $2`,
		orgID, id, checkoutRequestID,
	)
	if err != nil {
		return fmt.Errorf("set checkout request: %w", err)
	}
	return nil
}

// MarkPaid cierra el pedido. La condición status <> 'paid' evita cobrar dos veces.
func (r *OrderRepo) MarkPaid(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = 'paid', payment_method = $3, amount_tendered = $4, change_due = $5,
			transaction_id = $6, paid_at = $7, updated_at = $7
		WHERE org_id = $1 AND id = $2 AND status <> 'paid'`,
		o.OrgID, o.ID, o.PaymentMethod, o.AmountTendered, o.ChangeDue, nullIfEmpty(o.TransactionID), o.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderClosed
	}
	return nil
}

// ListActive pedidos abiertos, más antiguos primero (orden de preparación).
func (r *OrderRepo) ListActive(ctx context.Context, orgID string) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+`
		WHERE o.org_id = $1 AND o.status IN ('pending', 'ready')
		ORDER BY o.created_at ASC`, orgID)
}

// ListPaidBetween pedidos pagados en [from, to), más recientes primero.
func (r *OrderRepo) ListPaidBetween(ctx context.Context, orgID string, from, to time.Time) ([]*entity.Order, error) {
	return r.list(ctx, orderSelect+`
		WHERE o.org_id = $1 AND o.status = 'paid' AND o.paid_at >= $2 AND o.paid_at < $3
		ORDER BY o.paid_at DESC`, orgID, from, to)
}

func (r *OrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var o entity.Order
	var tableID, method, txID, checkoutID, offlineID, createdBy *string
	var tendered, change decimal.NullDecimal
	if err := row.Scan(&o.ID, &o.OrgID, &tableID, &o.TableNumber, &o.Items, &o.TotalPrice, &o.Status,
		&o.KitchenStatus, &o.BarStatus, &method, &tendered, &change, &txID,
		&checkoutID, &offlineID, &createdBy, &o.CreatedAt, &o.UpdatedAt, &o.PaidAt); err != nil {
		return nil, err
	}
	o.TableID = deref(tableID)
	o.PaymentMethod = deref(method)
	o.TransactionID = deref(txID)
	o.CheckoutRequestID = deref(checkoutID)
	o.OfflineID = deref(offlineID)
	o.CreatedBy = deref(createdBy)
	if tendered.Valid {
		o.AmountTendered = tendered.Decimal
	}
	if change.Valid {
		o.ChangeDue = change.Decimal
	}
	return &o, nil
}

func itemsOrEmpty(items []entity.OrderItem) []entity.OrderItem {
	if items == nil {
		return []entity.OrderItem{}
	}
	return items
}
