package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
)

// ErrInvalidTicket mensaje que no se puede decodificar; va a la cola de dead letters.
var ErrInvalidTicket = errors.New("comanda inválida")

// TicketHandler procesa una comanda. Un error devuelve el mensaje a la cola.
type TicketHandler func(ctx context.Context, t ports.Ticket) error

// ErrMissingOrg la cola de estación se enlaza a una sola organización.
var ErrMissingOrg = errors.New("rabbitmq: la cola de estación requiere org_id")

// QueueName cola durable de la estación de una organización.
func QueueName(exchange, station, orgID string) string {
	return exchange + "." + station + "." + orgID
}

// DeclareStationQueue declara la cola de la estación enlazada sólo a las comandas de orgID.
func (c *Client) DeclareStationQueue(station, orgID string) (string, error) {
	if orgID == "" || strings.ContainsAny(orgID, "*#.") {
		return "", ErrMissingOrg
	}
	q := QueueName(c.exchange, station, orgID)
	if _, err := c.ch.QueueDeclare(q, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": c.exchange + deadLetterSufix,
	}); err != nil {
		return "", fmt.Errorf("rabbitmq: declarar cola %s: %w", q, err)
	}
	if err := c.ch.QueueBind(q, RoutingKey(station, orgID), c.exchange, false, nil); err != nil {
		return "", fmt.Errorf("rabbitmq: bind %s: %w", q, err)
	}
	return q, nil
}

// ConsumeStation consume la cola de la estación hasta que ctx termine o el broker cierre
// el canal. Ack tras procesar; JSON inválido se rechaza sin reencolar.
func (c *Client) ConsumeStation(ctx context.Context, station, orgID, consumer string, prefetch int, handle TicketHandler, log zerolog.Logger) error {
	queue, err := c.DeclareStationQueue(station, orgID)
	if err != nil {
		return err
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("rabbitmq: qos: %w", err)
	}
	deliveries, err := c.ch.Consume(queue, consumer, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume %s: %w", queue, err)
	}
	log.Info().Str("queue", queue).Int("prefetch", prefetch).Msg("consumiendo comandas")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq: canal de entregas cerrado")
			}
			handleDelivery(ctx, d, handle, log)
		}
	}
}

// acknowledger subconjunto de amqp.Delivery usado para confirmar (permite tests sin broker).
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(ctx context.Context, d amqp.Delivery, handle TicketHandler, log zerolog.Logger) {
	process(ctx, d.Body, d.Redelivered, &d, handle, log)
}

func process(ctx context.Context, body []byte, redelivered bool, ack acknowledger, handle TicketHandler, log zerolog.Logger) {
	t, err := DecodeTicket(body)
	if err != nil {
		log.Error().Err(err).Msg("comanda descartada")
		_ = ack.Nack(false, false)
		return
	}
	if err := handle(ctx, t); err != nil {
		// Un segundo fallo va a dead letters para no ciclar.
		log.Error().Err(err).Str("order_id", t.OrderID).Bool("redelivered", redelivered).Msg("error procesando comanda")
		_ = ack.Nack(false, !redelivered)
		return
	}
	_ = ack.Ack(false)
}

// DecodeTicket decodifica y valida el cuerpo del mensaje.
func DecodeTicket(body []byte) (ports.Ticket, error) {
	var t ports.Ticket
	if err := json.Unmarshal(body, &t); err != nil {
		return ports.Ticket{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	if t.OrderID == "" || t.Station == "" || len(t.Items) == 0 {
		return ports.Ticket{}, fmt.Errorf("%w: faltan order_id, station o items", ErrInvalidTicket)
	}
	return t, nil
}
