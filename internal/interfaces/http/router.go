package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/analytics"
	"github.com/jhoicas/stasha-pos/internal/application/auth"
	"github.com/jhoicas/stasha-pos/internal/application/ordering"
	"github.com/jhoicas/stasha-pos/internal/application/payment"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	TeamUC         *usecase.TeamUseCase
	MenuUC         *usecase.MenuUseCase
	TableUC        *usecase.TableUseCase
	PlanUC         *usecase.PlanUseCase
	OrderUC        *ordering.OrderUseCase
	PaymentUC      *payment.PaymentUseCase
	ReportUC       *analytics.ReportUseCase
	DashboardUC    *analytics.DashboardUseCase
	JWTSecret      string
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, log)
	planHandler := NewPlanHandler(deps.PlanUC, log)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, log)

	// Públicas
	api.Get("/plans", planHandler.List)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/accept-invite", authHandler.AcceptInvite)
	api.Post("/mpesa/callback", paymentHandler.Callback)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Además exigen organización activa y membresía vigente (el rol se relee de la base)
	tenant := protected.Group("", RequireActiveOrganization(deps.OrganizationUC, log), RequireMembership(deps.TeamUC, log))
	byID := RequireUUIDParams("id")
	managers := RequireRole(RolesManagers...)
	stock := RequireRole(entity.RoleOwner, entity.RoleAdmin, entity.RoleRoomKeeper)

	orgHandler := NewOrganizationHandler(deps.OrganizationUC, log)
	tenant.Get("/organization", orgHandler.Get)
	tenant.Put("/organization", managers, orgHandler.Update)

	team := tenant.Group("/team", managers)
	teamHandler := NewTeamHandler(deps.TeamUC, log)
	team.Get("/", teamHandler.List)
	team.Post("/", teamHandler.Invite)
	team.Patch("/:id/role", byID, teamHandler.UpdateRole)
	team.Delete("/:id", byID, teamHandler.Remove)

	menu := tenant.Group("/menu")
	menuHandler := NewMenuHandler(deps.MenuUC, log)
	menu.Get("/categories", menuHandler.ListCategories)
	menu.Post("/categories", managers, menuHandler.CreateCategory)
	menu.Put("/categories/:id", managers, byID, menuHandler.UpdateCategory)
	menu.Delete("/categories/:id", managers, byID, menuHandler.DeleteCategory)
	menu.Get("/items", menuHandler.ListItems)
	menu.Get("/items/available", menuHandler.ListAvailable)
	menu.Get("/items/low-stock", menuHandler.LowStock)
	menu.Post("/items", managers, menuHandler.CreateItem)
	menu.Put("/items/:id", managers, byID, menuHandler.UpdateItem)
	menu.Patch("/items/:id/availability", managers, byID, menuHandler.SetAvailability)
	menu.Delete("/items/:id", managers, byID, menuHandler.DeleteItem)

	waiters := RequireRole(RolesOrdering...)
	tableHandler := NewTableHandler(deps.TableUC, log)
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	tables := tenant.Group("/tables")
	tables.Get("/", tableHandler.Board)
	tables.Post("/", managers, tableHandler.Create)
	tables.Delete("/:id", managers, byID, tableHandler.Delete)
	tables.Get("/:id/order", waiters, byID, orderHandler.ActiveOrder)
	tables.Post("/:id/order", waiters, byID, orderHandler.PlaceOrder)

	orders := tenant.Group("/orders")
	cashier := RequireRole(RolesCashier...)
	orders.Post("/sync", waiters, orderHandler.Sync)
	orders.Post("/:id/stations/:station/ready", RequireStationRole(), byID, orderHandler.MarkReady)
	orders.Post("/:id/pay", cashier, byID, paymentHandler.Pay)
	orders.Post("/:id/mpesa", cashier, byID, paymentHandler.MobileMoney)
	orders.Get("/:id/receipt", cashier, byID, paymentHandler.Receipt)

	tenant.Get("/stations/:station/orders", RequireStationRole(), orderHandler.StationBoard)

	reports := tenant.Group("/reports", stock)
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports.Get("/sales", managers, reportHandler.Sales)
	reports.Get("/stock-movements", reportHandler.StockMovements)
	reports.Get("/reconciliation", reportHandler.Reconciliation)
	reports.Post("/purchases", reportHandler.AddPurchase)
	reports.Post("/counts", reportHandler.SubmitCount)
	reports.Post("/adjustments", reportHandler.RecordAdjustment)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	tenant.Get("/dashboard", managers, dashboardHandler.GetSummary)
}
