// seed aplica las migraciones, publica los planes comerciales y, con -demo, crea un
// restaurante de prueba con su owner, categorías, menú y mesas.
//
// Uso: go run ./cmd/seed [-demo] [-email owner@demo.co.ke] [-password secret123]
// Lee la misma configuración que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/application/auth"
	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/stasha-pos/pkg/config"
	"github.com/jhoicas/stasha-pos/pkg/logger"
)

var plans = []entity.Plan{
	{
		ID:       "starter",
		Name:     "Starter",
		PriceKES: decimal.NewFromInt(1500),
		Features: []string{"1 terminal", "Hasta 10 mesas", "Pagos en efectivo y M-Pesa"},
	},
	{
		ID:        "business",
		Name:      "Business",
		PriceKES:  decimal.NewFromInt(3500),
		Features:  []string{"Terminales ilimitadas", "Pantallas de cocina y barra", "Reportes e inventario"},
		Highlight: true,
	},
	{
		ID:       "enterprise",
		Name:     "Enterprise",
		PriceKES: decimal.NewFromInt(7500),
		Features: []string{"Varias sucursales", "Impresoras de comandas", "Soporte prioritario"},
	},
}

type demoItem struct {
	name  string
	price int64
	stock int
	emoji string
}

var demoMenu = []struct {
	category string
	kitchen  bool
	items    []demoItem
}{
	{"Grill", true, []demoItem{
		{"Nyama Choma (1/2 kg)", 900, 40, "🍖"},
		{"Kuku Choma", 750, 30, "🍗"},
	}},
	{"Sides", true, []demoItem{
		{"Ugali", 100, 100, "🍚"},
		{"Kachumbari", 150, 60, "🥗"},
		{"Chips", 200, 80, "🍟"},
	}},
	{"Drinks", false, []demoItem{
		{"Tusker Lager", 300, 120, "🍺"},
		{"Soda", 80, 150, "🥤"},
		{"Dawa Cocktail", 450, 50, "🍹"},
	}},
}

func main() {
	demo := flag.Bool("demo", false, "crear restaurante de prueba")
	email := flag.String("email", "owner@demo.co.ke", "email del owner demo")
	password := flag.String("password", "demo12345", "contraseña del owner demo")
	tables := flag.Int("tables", 8, "mesas del restaurante demo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Ints("versions", applied).Msg("migraciones aplicadas")

	planRepo := postgres.NewPlanRepository(pool)
	for i := range plans {
		if err := planRepo.Upsert(ctx, &plans[i]); err != nil {
			log.Fatal().Err(err).Str("plan", plans[i].ID).Msg("guardar plan")
		}
	}
	log.Info().Int("plans", len(plans)).Msg("planes publicados")

	if !*demo {
		return
	}

	// Signup firma un token al final; en development basta uno descartable.
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "seed"
	}
	orgRepo := postgres.NewOrganizationRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	authUC := auth.NewAuthUseCase(profileRepo, orgRepo, postgres.NewTxRunner(pool), auth.JWTConfig{
		Secret:     secret,
		ExpMinutes: 1,
		Issuer:     cfg.JWT.Issuer,
	})

	out, err := authUC.Signup(ctx, dto.SignupRequest{
		OrganizationName: "Mama Oliech Demo",
		FullName:         "Demo Owner",
		Email:            *email,
		Password:         *password,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		log.Warn().Str("email", *email).Msg("el owner demo ya existe, no se vuelve a sembrar")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear organización demo")
	}
	orgID := out.User.OrgID

	menuUC := usecase.NewMenuUseCase(postgres.NewCategoryRepository(pool), postgres.NewMenuItemRepository(pool))
	var items int
	for _, c := range demoMenu {
		kitchen := c.kitchen
		cat, err := menuUC.CreateCategory(ctx, orgID, dto.CategoryRequest{Name: c.category, IsKitchen: &kitchen})
		if err != nil {
			log.Fatal().Err(err).Str("category", c.category).Msg("crear categoría")
		}
		for _, it := range c.items {
			stock := it.stock
			if _, err := menuUC.CreateItem(ctx, orgID, dto.CreateMenuItemRequest{
				Name:          it.name,
				Price:         decimal.NewFromInt(it.price),
				CategoryID:    cat.ID,
				StockQuantity: &stock,
				Emoji:         it.emoji,
			}); err != nil {
				log.Fatal().Err(err).Str("item", it.name).Msg("crear ítem")
			}
			items++
		}
	}

	tableUC := usecase.NewTableUseCase(postgres.NewTableRepository(pool), postgres.NewOrderRepository(pool))
	for i := 1; i <= *tables; i++ {
		if _, err := tableUC.Create(ctx, orgID, dto.CreateTableRequest{TableNumber: fmt.Sprint(i)}); err != nil {
			log.Fatal().Err(err).Int("table", i).Msg("crear mesa")
		}
	}

	log.Info().
		Str("org_id", orgID).
		Str("email", *email).
		Int("menu_items", items).
		Int("tables", *tables).
		Msg("restaurante demo listo")
}
