package ports

import (
	"context"
	"time"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// Ticket comanda enviada a una estación: sólo las líneas nuevas de esa estación.
type Ticket struct {
	OrderID     string             `json:"order_id"`
	OrgID       string             `json:"org_id"`
	TableID     string             `json:"table_id"`
	TableNumber string             `json:"table_number"`
	Station     string             `json:"station"`
	Items       []entity.OrderItem `json:"items"`
	Amended     bool               `json:"amended"` // true si es un agregado a una cuenta existente
	CreatedAt   time.Time          `json:"created_at"`
}

// TicketDispatcher publica comandas hacia las estaciones (impresoras, pantallas).
// Un error no invalida el pedido: el display de estación lee de la base igualmente.
type TicketDispatcher interface {
	Dispatch(ctx context.Context, t Ticket) error
}
