// ticket-worker consume las comandas de una estación (cocina o barra) y las imprime
// en formato de 32 columnas. -out permite escribir directo a la impresora térmica.
//
// Uso: go run ./cmd/ticket-worker -station kitchen -org <org_id> [-out /dev/usb/lp0]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/infrastructure/rabbitmq"
	"github.com/jhoicas/stasha-pos/pkg/config"
	"github.com/jhoicas/stasha-pos/pkg/logger"
)

func main() {
	station := flag.String("station", entity.StationKitchen, "estación a consumir: kitchen | bar")
	org := flag.String("org", "", "ID de la organización cuyas comandas se imprimen (obligatorio)")
	out := flag.String("out", "", "archivo o dispositivo de impresión (por defecto stdout)")
	prefetch := flag.Int("prefetch", 10, "comandas sin confirmar por consumidor")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if !entity.IsValidStation(*station) {
		log.Fatal().Str("station", *station).Msg("estación inválida")
	}
	if *org == "" {
		log.Fatal().Msg("-org es obligatorio: cada impresora atiende a un solo restaurante")
	}
	if cfg.AMQP.URL == "" {
		log.Fatal().Msg("AMQP_URL es obligatorio para el worker de comandas")
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.OpenFile(*out, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			log.Fatal().Err(err).Str("out", *out).Msg("abrir salida de impresión")
		}
		defer f.Close()
		w = f
	}

	client, err := rabbitmq.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wlog := log.Component("ticket-worker").With().Str("station", *station).Str("org_id", *org).Logger()
	var mu sync.Mutex
	printTicket := func(_ context.Context, t ports.Ticket) error {
		mu.Lock()
		defer mu.Unlock()
		if _, err := io.WriteString(w, rabbitmq.FormatTicket(t)+"\n\n"); err != nil {
			return fmt.Errorf("imprimir comanda: %w", err)
		}
		wlog.Info().Str("order_id", t.OrderID).Str("table", t.TableNumber).Int("items", len(t.Items)).Msg("comanda impresa")
		return nil
	}

	consumer := fmt.Sprintf("%s-%s-%d", cfg.App.Name, *station, os.Getpid())
	if err := client.ConsumeStation(ctx, *station, *org, consumer, *prefetch, printTicket, wlog); err != nil {
		log.Fatal().Err(err).Msg("consumo de comandas")
	}
	wlog.Info().Msg("worker detenido")
}
