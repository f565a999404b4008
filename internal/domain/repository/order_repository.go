package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Order, error)
	// FindByID busca sin filtrar por organización (callback de la pasarela).
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	GetActiveByTable(ctx context.Context, orgID, tableID string) (*entity.Order, error)
	GetByOfflineID(ctx context.Context, orgID, offlineID string) (*entity.Order, error)
	// UpdateItems persiste ítems, total y estados de estación de un pedido activo.
	UpdateItems(ctx context.Context, o *entity.Order) error
	UpdateStatus(ctx context.Context, o *entity.Order) error
	SetCheckoutRequest(ctx context.Context, orgID, id, checkoutRequestID string) error
	// MarkPaid cierra el pedido con los datos de pago. Devuelve domain.ErrOrderClosed
	// si ya estaba pagado.
	MarkPaid(ctx context.Context, o *entity.Order) error
	// ListActive pedidos pending|ready ascendentes por created_at.
	ListActive(ctx context.Context, orgID string) ([]*entity.Order, error)
	// ListPaidBetween pedidos pagados con paid_at en [from, to).
	ListPaidBetween(ctx context.Context, orgID string, from, to time.Time) ([]*entity.Order, error)
}
