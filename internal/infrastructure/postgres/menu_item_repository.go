package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// Sin categoría el ítem se enruta a cocina.
const menuItemSelect = `
	SELECT m.id, m.org_id, m.category_id, COALESCE(c.name, ''), m.name, m.price_kes, m.stock_quantity,
		m.low_stock_threshold, m.emoji, m.available, COALESCE(c.is_kitchen, TRUE), m.created_at, m.updated_at
	FROM menu_items m
	LEFT JOIN categories c ON c.id = m.category_id`

// MenuItemRepo implementación de MenuItemRepository sobre PostgreSQL (usable con pool o tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

// Create persiste un ítem. Una categoría inexistente se reporta como ErrNotFound.
func (r *MenuItemRepo) Create(ctx context.Context, m *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, org_id, category_id, name, price_kes, stock_quantity, low_stock_threshold, emoji, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OrgID, nullIfEmpty(m.CategoryID), m.Name, m.Price, m.StockQuantity, m.LowStockThreshold,
		m.Emoji, m.Available, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidID(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, m.CategoryID)
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem de la organización.
func (r *MenuItemRepo) GetByID(ctx context.Context, orgID, id string) (*entity.MenuItem, error) {
	m, err := scanMenuItem(r.q.QueryRow(ctx, menuItemSelect+` WHERE m.org_id = $1 AND m.id = $2`, orgID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return m, nil
}

// GetByIDs obtiene varios ítems; los ids inexistentes simplemente no aparecen.
func (r *MenuItemRepo) GetByIDs(ctx context.Context, orgID string, ids []string) ([]*entity.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, menuItemSelect+` WHERE m.org_id = $1 AND m.id::TEXT = ANY($2)`, orgID, ids)
}

// Update reemplaza los campos editables del ítem (no el stock: va por AdjustStock).
func (r *MenuItemRepo) Update(ctx context.Context, m *entity.MenuItem) error {
	query := `
		UPDATE menu_items SET category_id = $3, name = $4, price_kes = $5, low_stock_threshold = $6,
			emoji = $7, available = $8, updated_at = $9
		WHERE org_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		m.OrgID, m.ID, nullIfEmpty(m.CategoryID), m.Name, m.Price, m.LowStockThreshold, m.Emoji, m.Available, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidID(err) {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, m.CategoryID)
		}
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// SetAvailability cambia sólo el flag de disponibilidad.
func (r *MenuItemRepo) SetAvailability(ctx context.Context, orgID, id string, available bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE menu_items SET available = $3, updated_at = now() WHERE org_id = $1 AND id = $2`,
		orgID, id, available,
	)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock suma delta a stock_quantity.
func (r *MenuItemRepo) AdjustStock(ctx context.Context, orgID, id string, delta int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE menu_items SET stock_quantity = stock_quantity + $3, updated_at = now() WHERE org_id = $1 AND id = $2`,
		orgID, id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem.
func (r *MenuItemRepo) Delete(ctx context.Context, orgID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM menu_items WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

// ListByOrg lista el menú por nombre; onlyAvailable filtra lo que se puede pedir.
func (r *MenuItemRepo) ListByOrg(ctx context.Context, orgID string, onlyAvailable bool) ([]*entity.MenuItem, error) {
	query := menuItemSelect + ` WHERE m.org_id = $1`
	if onlyAvailable {
		query += ` AND m.available`
	}
	return r.list(ctx, query+` ORDER BY m.name`, orgID)
}

// ListLowStock ítems con stock en o por debajo del umbral, los más críticos primero.
func (r *MenuItemRepo) ListLowStock(ctx context.Context, orgID string) ([]*entity.MenuItem, error) {
	return r.list(ctx, menuItemSelect+`
		WHERE m.org_id = $1 AND m.stock_quantity <= m.low_stock_threshold
		ORDER BY m.stock_quantity, m.name`, orgID)
}

func (r *MenuItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MenuItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMenuItem(row rowScanner) (*entity.MenuItem, error) {
	var m entity.MenuItem
	var categoryID *string
	if err := row.Scan(&m.ID, &m.OrgID, &categoryID, &m.CategoryName, &m.Name, &m.Price, &m.StockQuantity,
		&m.LowStockThreshold, &m.Emoji, &m.Available, &m.IsKitchenItem, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.CategoryID = deref(categoryID)
	return &m, nil
}
