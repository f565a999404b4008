// Package rabbitmq publica y consume comandas de cocina/barra sobre AMQP 0-9-1.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topología de comandas.
const (
	DefaultExchange = "pos.tickets"
	deadLetterSufix = ".dlx"
)

// Client conexión + canal en modo confirm. Publish se serializa con mu para emparejar
// cada publicación con su confirmación.
type Client struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// Dial abre la conexión, habilita publisher confirms y declara la topología del exchange.
func Dial(url, exchange string) (*Client, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: canal: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: confirm mode: %w", err)
	}
	c := &Client{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		acks:     ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}
	if err := c.declareExchanges(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close cierra canal y conexión. Seguro con nil.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Ping verifica que la conexión siga abierta.
func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq: conexión cerrada")
	}
	return nil
}

// Exchange nombre del exchange de comandas.
func (c *Client) Exchange() string { return c.exchange }

func (c *Client) declareExchanges() error {
	if err := c.ch.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declarar exchange %s: %w", c.exchange, err)
	}
	dlx := c.exchange + deadLetterSufix
	if err := c.ch.ExchangeDeclare(dlx, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declarar exchange %s: %w", dlx, err)
	}
	if _, err := c.ch.QueueDeclare(dlx, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declarar cola %s: %w", dlx, err)
	}
	if err := c.ch.QueueBind(dlx, "", dlx, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: bind %s: %w", dlx, err)
	}
	return nil
}

// publish envía un mensaje persistente y espera el ack del broker o la cancelación de ctx.
func (c *Client) publish(ctx context.Context, key string, body []byte, headers amqp.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.PublishWithContext(ctx, c.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Headers:      headers,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("rabbitmq: publicar %s: %w", key, err)
	}

	select {
	case conf, ok := <-c.acks:
		if !ok {
			return errors.New("rabbitmq: canal cerrado esperando confirmación")
		}
		if !conf.Ack {
			return fmt.Errorf("rabbitmq: NACK del broker para %s", key)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
