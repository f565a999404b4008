//go:build container

package rabbitmq

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
)

func startBroker(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5672")
	require.NoError(t, err)
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func TestPublicarYConsumirComanda(t *testing.T) {
	url := startBroker(t)

	pubClient, err := Dial(url, DefaultExchange)
	require.NoError(t, err)
	defer pubClient.Close()

	subClient, err := Dial(url, DefaultExchange)
	require.NoError(t, err)
	defer subClient.Close()

	// la cola tiene que existir antes de publicar
	_, err = subClient.DeclareStationQueue("bar", "org-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	received := make(chan ports.Ticket, 2)
	go func() {
		_ = subClient.ConsumeStation(ctx, "bar", "org-1", "test", 1, func(_ context.Context, tk ports.Ticket) error {
			received <- tk
			return nil
		}, zerolog.Nop())
	}()

	pub := NewTicketPublisher(pubClient, zerolog.Nop())
	other := sampleTicket()
	other.Station = "bar"
	other.OrgID = "org-2"
	other.OrderID = "8f14e45f-ceea-4a7b-9c2d-000000000002"
	require.NoError(t, pub.Dispatch(ctx, other))

	tk := sampleTicket()
	tk.Station = "bar"
	require.NoError(t, pub.Dispatch(ctx, tk))

	select {
	case got := <-received:
		require.Equal(t, tk.OrderID, got.OrderID)
		require.Len(t, got.Items, 2)
	case <-ctx.Done():
		t.Fatal("no llegó la comanda")
	}

	// la comanda de otra organización nunca llega a esta cola
	select {
	case got := <-received:
		t.Fatalf("comanda ajena recibida: %s (org %s)", got.OrderID, got.OrgID)
	case <-time.After(2 * time.Second):
	}
}
