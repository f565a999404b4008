package repository

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// MenuItemRepository define el puerto de persistencia para el menú.
// Las lecturas resuelven CategoryName e IsKitchenItem a partir de la categoría.
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, orgID, id string) (*entity.MenuItem, error)
	GetByIDs(ctx context.Context, orgID string, ids []string) ([]*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	SetAvailability(ctx context.Context, orgID, id string, available bool) error
	// AdjustStock suma delta (puede ser negativo) a stock_quantity.
	AdjustStock(ctx context.Context, orgID, id string, delta int) error
	Delete(ctx context.Context, orgID, id string) error
	ListByOrg(ctx context.Context, orgID string, onlyAvailable bool) ([]*entity.MenuItem, error)
	ListLowStock(ctx context.Context, orgID string) ([]*entity.MenuItem, error)
}
