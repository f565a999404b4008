package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
)

var (
	_ ports.TicketDispatcher = (*TicketPublisher)(nil)
	_ ports.TicketDispatcher = NoopDispatcher{}
)

// RoutingKey station.<kitchen|bar>.<org_id>
func RoutingKey(station, orgID string) string {
	return fmt.Sprintf("station.%s.%s", station, orgID)
}

// TicketPublisher publica comandas en el exchange topic.
type TicketPublisher struct {
	client *Client
	log    zerolog.Logger
}

// NewTicketPublisher construye el publicador sobre un cliente ya conectado.
func NewTicketPublisher(client *Client, log zerolog.Logger) *TicketPublisher {
	return &TicketPublisher{client: client, log: log}
}

// Dispatch serializa la comanda y espera la confirmación del broker.
func (p *TicketPublisher) Dispatch(ctx context.Context, t ports.Ticket) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar comanda: %w", err)
	}
	key := RoutingKey(t.Station, t.OrgID)
	if err := p.client.publish(ctx, key, body, amqp.Table{"order_id": t.OrderID}); err != nil {
		return err
	}
	p.log.Debug().Str("routing_key", key).Str("order_id", t.OrderID).Int("items", len(t.Items)).Msg("comanda publicada")
	return nil
}

// NoopDispatcher se usa cuando AMQP_URL no está configurado: las estaciones leen
// los pedidos desde el tablero.
type NoopDispatcher struct {
	Log zerolog.Logger
}

// Dispatch sólo deja traza.
func (d NoopDispatcher) Dispatch(_ context.Context, t ports.Ticket) error {
	d.Log.Debug().Str("station", t.Station).Str("order_id", t.OrderID).Msg("despacho de comandas deshabilitado")
	return nil
}
