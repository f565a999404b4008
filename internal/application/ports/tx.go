package ports

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// StockTxRunner ejecuta fn en una transacción con el ledger y el menú atados a ella:
// un asiento y su ajuste de stock_quantity se confirman juntos.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		items repository.MenuItemRepository,
		stock repository.StockRepository,
	) error) error
}

// AccountTxRunner crea organización y perfil del owner de forma atómica (signup).
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		orgs repository.OrganizationRepository,
		profiles repository.ProfileRepository,
	) error) error
}
