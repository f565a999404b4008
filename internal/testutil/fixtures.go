package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/pkg/jwt"
)

// TestJWTSecret secret usado por los tests de handlers.
const TestJWTSecret = "test-secret-key-for-unit-tests"

// SeedOrganization crea una organización activa.
func SeedOrganization(t *testing.T, s *Store, name string) *entity.Organization {
	t.Helper()
	now := time.Now()
	o := &entity.Organization{ID: uuid.NewString(), Name: name, Status: entity.OrgStatusActive, CreatedAt: now, UpdatedAt: now}
	if err := s.Organizations().Create(context.Background(), o); err != nil {
		t.Fatalf("seed organization: %v", err)
	}
	return o
}

// SeedProfile crea un perfil activo con contraseña "password123".
func SeedProfile(t *testing.T, s *Store, orgID, email, role string) *entity.Profile {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now()
	p := &entity.Profile{
		ID: uuid.NewString(), OrgID: orgID, Email: email, FullName: email, PasswordHash: string(hash),
		Role: role, Status: entity.ProfileStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.Profiles().Create(context.Background(), p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}

// SeedCategory crea una categoría de cocina o barra.
func SeedCategory(t *testing.T, s *Store, orgID, name string, kitchen bool) *entity.Category {
	t.Helper()
	c := &entity.Category{ID: uuid.NewString(), OrgID: orgID, Name: name, IsKitchen: kitchen, CreatedAt: time.Now()}
	if err := s.Categories().Create(context.Background(), c); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

// SeedMenuItem crea un ítem disponible con stock 50.
func SeedMenuItem(t *testing.T, s *Store, orgID, categoryID, name string, price int64) *entity.MenuItem {
	t.Helper()
	now := time.Now()
	m := &entity.MenuItem{
		ID: uuid.NewString(), OrgID: orgID, CategoryID: categoryID, Name: name, Price: decimal.NewFromInt(price),
		StockQuantity: 50, LowStockThreshold: entity.DefaultLowStockThreshold, Emoji: entity.DefaultEmoji,
		Available: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.MenuItems().Create(context.Background(), m); err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return m
}

// SeedTable crea una mesa.
func SeedTable(t *testing.T, s *Store, orgID, number string) *entity.Table {
	t.Helper()
	tb := &entity.Table{ID: uuid.NewString(), OrgID: orgID, TableNumber: number, CreatedAt: time.Now()}
	if err := s.Tables().Create(context.Background(), tb); err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return tb
}

// Bearer devuelve el header Authorization para el usuario.
func Bearer(t *testing.T, userID, orgID, role string) string {
	t.Helper()
	tok, err := jwt.Generate(TestJWTSecret, userID, orgID, role, "stasha-pos-test", 60)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	return "Bearer " + tok
}

// ─── Dobles de puertos ───────────────────────────────────────────────────────

var _ ports.TicketDispatcher = (*Dispatcher)(nil)

// Dispatcher registra las comandas publicadas.
type Dispatcher struct {
	mu      sync.Mutex
	Tickets []ports.Ticket
	Err     error
}

func (d *Dispatcher) Dispatch(_ context.Context, t ports.Ticket) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Tickets = append(d.Tickets, t)
	return nil
}

// Sent copia de las comandas publicadas.
func (d *Dispatcher) Sent() []ports.Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ports.Ticket(nil), d.Tickets...)
}

var _ ports.MobileMoneyGateway = (*Gateway)(nil)

// Gateway pasarela de pago móvil falsa.
type Gateway struct {
	mu       sync.Mutex
	Requests []ports.STKPushRequest
	Result   *ports.STKPushResult
	Err      error
}

func (g *Gateway) STKPush(_ context.Context, req ports.STKPushRequest) (*ports.STKPushResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return nil, g.Err
	}
	if g.Result != nil {
		return g.Result, nil
	}
	return &ports.STKPushResult{CheckoutRequestID: "ws_CO_" + req.OrderID, CustomerMessage: "Success. Request accepted for processing"}, nil
}

var _ ports.ReceiptGenerator = (*Receipts)(nil)

// Receipts generador de recibos que devuelve un PDF mínimo.
type Receipts struct{}

func (Receipts) Receipt(_ *entity.Organization, o *entity.Order) ([]byte, error) {
	return []byte("%PDF-1.4 " + o.ID), nil
}
