package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/stasha-pos/docs"
	"github.com/jhoicas/stasha-pos/internal/application/analytics"
	"github.com/jhoicas/stasha-pos/internal/application/auth"
	"github.com/jhoicas/stasha-pos/internal/application/ordering"
	"github.com/jhoicas/stasha-pos/internal/application/payment"
	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/infrastructure/mpesa"
	infrapdf "github.com/jhoicas/stasha-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/stasha-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/stasha-pos/internal/infrastructure/rabbitmq"
	httpRouter "github.com/jhoicas/stasha-pos/internal/interfaces/http"
	"github.com/jhoicas/stasha-pos/pkg/config"
	"github.com/jhoicas/stasha-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Ints("versions", applied).Msg("migraciones aplicadas")
	}

	orgRepo := postgres.NewOrganizationRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	menuItemRepo := postgres.NewMenuItemRepository(pool)
	tableRepo := postgres.NewTableRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Pasarela M-Pesa: sin credenciales queda nil y el cobro móvil responde 503.
	var gateway ports.MobileMoneyGateway
	if cfg.MPesa.Enabled() {
		gateway = mpesa.NewClient(mpesa.Config{
			BaseURL:         cfg.MPesa.BaseURL(),
			ConsumerKey:     cfg.MPesa.ConsumerKey,
			ConsumerSecret:  cfg.MPesa.ConsumerSecret,
			ShortCode:       cfg.MPesa.ShortCode,
			PassKey:         cfg.MPesa.PassKey,
			TransactionType: cfg.MPesa.TransactionType,
			CallbackBaseURL: cfg.HTTP.PublicBaseURL,
			CallbackToken:   cfg.MPesa.CallbackToken,
		}, log.Component("mpesa"))
	} else {
		log.Warn().Msg("M-Pesa sin credenciales: cobro móvil deshabilitado")
	}

	// Comandas: con AMQP_URL se publican en RabbitMQ; sin él quedan sólo en el tablero.
	var dispatcher ports.TicketDispatcher = rabbitmq.NoopDispatcher{Log: log.Component("tickets")}
	if cfg.AMQP.URL != "" {
		amqpClient, err := rabbitmq.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpClient.Close()
		dispatcher = rabbitmq.NewTicketPublisher(amqpClient, log.Component("tickets"))
		log.Info().Str("exchange", amqpClient.Exchange()).Msg("despacho de comandas por RabbitMQ")
	}

	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	authUC := auth.NewAuthUseCase(profileRepo, orgRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orderUC := ordering.NewOrderUseCase(orderRepo, menuItemRepo, tableRepo, dispatcher, log.Component("ordering"))
	paymentUC := payment.NewPaymentUseCase(
		orderRepo, orgRepo, txRunner, gateway, mpesa.CallbackParser{},
		infrapdf.NewReceiptGenerator(),
		payment.Config{CallbackToken: cfg.MPesa.CallbackToken},
		log.Component("payment"),
	)
	reportUC := analytics.NewReportUseCase(orderRepo, menuItemRepo, stockRepo, reportRepo, txRunner, pos.BusinessZone, log.Component("reports"))
	dashboardUC := analytics.NewDashboardUseCase(reportRepo, orderRepo, menuItemRepo, tableRepo, profileRepo, pos.BusinessZone)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 40, // el STK push puede tardar hasta 30s
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete}, ","),
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.HTTP.PublicBaseURL, "https://"), "http://")
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stasha POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: orgUC,
		TeamUC:         usecase.NewTeamUseCase(profileRepo),
		MenuUC:         usecase.NewMenuUseCase(categoryRepo, menuItemRepo),
		TableUC:        usecase.NewTableUseCase(tableRepo, orderRepo),
		PlanUC:         usecase.NewPlanUseCase(planRepo),
		OrderUC:        orderUC,
		PaymentUC:      paymentUC,
		ReportUC:       reportUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
