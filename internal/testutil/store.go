// Package testutil repositorios en memoria y dobles de los puertos para tests de casos de uso y handlers.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// Store estado compartido por todos los repos en memoria.
// Las lecturas devuelven copias, igual que una base de datos.
type Store struct {
	mu         sync.Mutex
	orgs       map[string]entity.Organization
	profiles   map[string]entity.Profile
	categories map[string]entity.Category
	items      map[string]entity.MenuItem
	tables     map[string]entity.Table
	orders     map[string]entity.Order
	stockTx    []entity.StockTransaction
	purchases  []entity.StockPurchase
	counts     map[string]entity.StockCount
	plans      map[string]entity.Plan

	// StockErr si no es nil, RunStock falla con este error (ledger best-effort).
	StockErr error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		orgs:       map[string]entity.Organization{},
		profiles:   map[string]entity.Profile{},
		categories: map[string]entity.Category{},
		items:      map[string]entity.MenuItem{},
		tables:     map[string]entity.Table{},
		orders:     map[string]entity.Order{},
		counts:     map[string]entity.StockCount{},
		plans:      map[string]entity.Plan{},
	}
}

func (s *Store) Organizations() *OrganizationRepo { return &OrganizationRepo{s} }
func (s *Store) Profiles() *ProfileRepo           { return &ProfileRepo{s} }
func (s *Store) Categories() *CategoryRepo        { return &CategoryRepo{s} }
func (s *Store) MenuItems() *MenuItemRepo         { return &MenuItemRepo{s} }
func (s *Store) Tables() *TableRepo               { return &TableRepo{s} }
func (s *Store) Orders() *OrderRepo               { return &OrderRepo{s} }
func (s *Store) Stock() *StockRepo                { return &StockRepo{s} }
func (s *Store) Reports() *ReportRepo             { return &ReportRepo{s} }
func (s *Store) Plans() *PlanRepo                 { return &PlanRepo{s} }
func (s *Store) TxRunner() *TxRunner              { return &TxRunner{s} }

// StockTransactions copia del ledger (para asserts).
func (s *Store) StockTransactions() []entity.StockTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockTransaction(nil), s.stockTx...)
}

// ─── Organizations ───────────────────────────────────────────────────────────

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

type OrganizationRepo struct{ s *Store }

func (r *OrganizationRepo) Create(_ context.Context, o *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orgs[o.ID] = *o
	return nil
}

func (r *OrganizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orgs[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrganizationRepo) Update(_ context.Context, o *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orgs[o.ID] = *o
	return nil
}

// ─── Profiles ────────────────────────────────────────────────────────────────

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.profiles {
		if strings.EqualFold(other.Email, p.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.profiles[p.ID] = *p
	return nil
}

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProfileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	return r.find(func(p entity.Profile) bool { return strings.EqualFold(p.Email, email) })
}

func (r *ProfileRepo) GetByInviteToken(_ context.Context, token string) (*entity.Profile, error) {
	return r.find(func(p entity.Profile) bool { return token != "" && p.InviteToken == token })
}

func (r *ProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.profiles[p.ID] = *p
	return nil
}

func (r *ProfileRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Profile
	for _, p := range r.s.profiles {
		if p.OrgID == orgID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepo) find(match func(entity.Profile) bool) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if match(p) {
			return &p, nil
		}
	}
	return nil, nil
}

// ─── Categories ──────────────────────────────────────────────────────────────

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, orgID, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.OrgID != orgID {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, orgID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; !ok || c.OrgID != orgID {
		return nil
	}
	delete(r.s.categories, id)
	for k, it := range r.s.items {
		if it.CategoryID == id {
			it.CategoryID = ""
			r.s.items[k] = it
		}
	}
	return nil
}

func (r *CategoryRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.OrgID == orgID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Menu items ──────────────────────────────────────────────────────────────

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

type MenuItemRepo struct{ s *Store }

func (r *MenuItemRepo) Create(_ context.Context, m *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.CategoryID != "" {
		if _, ok := r.s.categories[m.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	r.s.items[m.ID] = *m
	return nil
}

func (r *MenuItemRepo) GetByID(_ context.Context, orgID, id string) (*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.items[id]
	if !ok || m.OrgID != orgID {
		return nil, nil
	}
	return r.s.resolve(m), nil
}

func (r *MenuItemRepo) GetByIDs(_ context.Context, orgID string, ids []string) ([]*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MenuItem
	for _, id := range ids {
		if m, ok := r.s.items[id]; ok && m.OrgID == orgID {
			out = append(out, r.s.resolve(m))
		}
	}
	return out, nil
}

func (r *MenuItemRepo) Update(_ context.Context, m *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[m.ID]
	if !ok {
		return nil
	}
	if m.CategoryID != "" {
		if _, ok := r.s.categories[m.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	next := *m
	next.StockQuantity = cur.StockQuantity
	r.s.items[m.ID] = next
	return nil
}

func (r *MenuItemRepo) SetAvailability(_ context.Context, orgID, id string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.items[id]
	if !ok || m.OrgID != orgID {
		return domain.ErrNotFound
	}
	m.Available = available
	r.s.items[id] = m
	return nil
}

func (r *MenuItemRepo) AdjustStock(_ context.Context, orgID, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.items[id]
	if !ok || m.OrgID != orgID {
		return domain.ErrNotFound
	}
	m.StockQuantity += delta
	r.s.items[id] = m
	return nil
}

func (r *MenuItemRepo) Delete(_ context.Context, orgID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.items[id]; ok && m.OrgID == orgID {
		delete(r.s.items, id)
	}
	return nil
}

func (r *MenuItemRepo) ListByOrg(_ context.Context, orgID string, onlyAvailable bool) ([]*entity.MenuItem, error) {
	return r.list(func(m entity.MenuItem) bool {
		return m.OrgID == orgID && (!onlyAvailable || m.Available)
	}), nil
}

func (r *MenuItemRepo) ListLowStock(_ context.Context, orgID string) ([]*entity.MenuItem, error) {
	out := r.list(func(m entity.MenuItem) bool { return m.OrgID == orgID && m.IsLowStock() })
	sort.SliceStable(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	return out, nil
}

func (r *MenuItemRepo) list(match func(entity.MenuItem) bool) []*entity.MenuItem {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MenuItem
	for _, m := range r.s.items {
		if match(m) {
			out = append(out, r.s.resolve(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// resolve completa los campos derivados de la categoría (como el LEFT JOIN).
func (s *Store) resolve(m entity.MenuItem) *entity.MenuItem {
	m.CategoryName = ""
	m.IsKitchenItem = true
	if c, ok := s.categories[m.CategoryID]; ok {
		m.CategoryName = c.Name
		m.IsKitchenItem = c.IsKitchen
	}
	return &m
}

// ─── Tables ──────────────────────────────────────────────────────────────────

var _ repository.TableRepository = (*TableRepo)(nil)

type TableRepo struct{ s *Store }

func (r *TableRepo) Create(_ context.Context, t *entity.Table) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tables[t.ID] = *t
	return nil
}

func (r *TableRepo) GetByID(_ context.Context, orgID, id string) (*entity.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[id]
	if !ok || t.OrgID != orgID {
		return nil, nil
	}
	return &t, nil
}

func (r *TableRepo) Delete(_ context.Context, orgID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tables[id]; ok && t.OrgID == orgID {
		delete(r.s.tables, id)
	}
	return nil
}

func (r *TableRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Table
	for _, t := range r.s.tables {
		if t.OrgID == orgID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].TableNumber) != len(out[j].TableNumber) {
			return len(out[i].TableNumber) < len(out[j].TableNumber)
		}
		return out[i].TableNumber < out[j].TableNumber
	})
	return out, nil
}

// ─── Orders ──────────────────────────────────────────────────────────────────

var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.OfflineID != "" {
		for _, other := range r.s.orders {
			if other.OrgID == o.OrgID && other.OfflineID == o.OfflineID {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, orgID, id string) (*entity.Order, error) {
	return r.find(func(o entity.Order) bool { return o.OrgID == orgID && o.ID == id }), nil
}

func (r *OrderRepo) FindByID(_ context.Context, id string) (*entity.Order, error) {
	return r.find(func(o entity.Order) bool { return o.ID == id }), nil
}

func (r *OrderRepo) GetActiveByTable(_ context.Context, orgID, tableID string) (*entity.Order, error) {
	list := r.list(func(o entity.Order) bool { return o.OrgID == orgID && o.TableID == tableID && o.IsActive() })
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

func (r *OrderRepo) GetByOfflineID(_ context.Context, orgID, offlineID string) (*entity.Order, error) {
	return r.find(func(o entity.Order) bool { return o.OrgID == orgID && o.OfflineID == offlineID }), nil
}

func (r *OrderRepo) UpdateItems(_ context.Context, o *entity.Order) error {
	return r.update(o.ID, func(cur *entity.Order) error {
		if !cur.IsActive() {
			return domain.ErrOrderClosed
		}
		cur.Items = append([]entity.OrderItem(nil), o.Items...)
		cur.TotalPrice = o.TotalPrice
		cur.Status, cur.KitchenStatus, cur.BarStatus = o.Status, o.KitchenStatus, o.BarStatus
		cur.UpdatedAt = o.UpdatedAt
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	return r.update(o.ID, func(cur *entity.Order) error {
		if !cur.IsActive() {
			return domain.ErrOrderClosed
		}
		cur.Status, cur.KitchenStatus, cur.BarStatus = o.Status, o.KitchenStatus, o.BarStatus
		cur.UpdatedAt = o.UpdatedAt
		return nil
	})
}

func (r *OrderRepo) SetCheckoutRequest(_ context.Context, _ string, id, checkoutRequestID string) error {
	return r.update(id, func(cur *entity.Order) error {
		cur.CheckoutRequestID = checkoutRequestID
		return nil
	})
}

func (r *OrderRepo) MarkPaid(_ context.Context, o *entity.Order) error {
	return r.update(o.ID, func(cur *entity.Order) error {
		if cur.Status == entity.OrderStatusPaid {
			return domain.ErrOrderClosed
		}
		cur.Status = entity.OrderStatusPaid
		cur.PaymentMethod = o.PaymentMethod
		cur.AmountTendered = o.AmountTendered
		cur.ChangeDue = o.ChangeDue
		cur.TransactionID = o.TransactionID
		cur.PaidAt = o.PaidAt
		return nil
	})
}

func (r *OrderRepo) ListActive(_ context.Context, orgID string) ([]*entity.Order, error) {
	return r.list(func(o entity.Order) bool { return o.OrgID == orgID && o.IsActive() }), nil
}

func (r *OrderRepo) ListPaidBetween(_ context.Context, orgID string, from, to time.Time) ([]*entity.Order, error) {
	out := r.list(func(o entity.Order) bool {
		return o.OrgID == orgID && o.Status == entity.OrderStatusPaid && o.PaidAt != nil &&
			!o.PaidAt.Before(from) && o.PaidAt.Before(to)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(*out[j].PaidAt) })
	return out, nil
}

// SetOrder reemplaza un pedido directamente (preparación de escenarios).
func (r *OrderRepo) SetOrder(o *entity.Order) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = cloneOrder(*o)
}

func (r *OrderRepo) update(id string, fn func(*entity.Order) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := fn(&cur); err != nil {
		return err
	}
	r.s.orders[id] = cur
	return nil
}

func (r *OrderRepo) find(match func(entity.Order) bool) *entity.Order {
	list := r.list(match)
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

func (r *OrderRepo) list(match func(entity.Order) bool) []*entity.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if match(o) {
			c := cloneOrder(o)
			if t, ok := r.s.tables[c.TableID]; ok {
				c.TableNumber = t.TableNumber
			}
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.PaidAt != nil {
		t := *o.PaidAt
		o.PaidAt = &t
	}
	return o
}

// ─── Stock ───────────────────────────────────────────────────────────────────

var _ repository.StockRepository = (*StockRepo)(nil)

type StockRepo struct{ s *Store }

func (r *StockRepo) AddTransaction(_ context.Context, t *entity.StockTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stockTx = append(r.s.stockTx, *t)
	return nil
}

func (r *StockRepo) ListTransactions(_ context.Context, orgID string, from, to time.Time) ([]*entity.StockTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockTransaction
	for _, t := range r.s.stockTx {
		if t.OrgID == orgID && !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			t := t
			if m, ok := r.s.items[t.MenuItemID]; ok {
				t.MenuItemName = m.Name
			}
			out = append(out, &t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *StockRepo) AddPurchase(_ context.Context, p *entity.StockPurchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases = append(r.s.purchases, *p)
	return nil
}

func (r *StockRepo) PurchasedByItem(_ context.Context, orgID string, date time.Time) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, p := range r.s.purchases {
		if p.OrgID == orgID && sameDay(p.Date, date) {
			out[p.ItemID] += p.Quantity
		}
	}
	return out, nil
}

func (r *StockRepo) UpsertCount(_ context.Context, c *entity.StockCount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counts[countKey(c.OrgID, c.ItemID, c.Date)] = *c
	return nil
}

func (r *StockRepo) CountsByItem(_ context.Context, orgID string, date time.Time) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, c := range r.s.counts {
		if c.OrgID == orgID && sameDay(c.Date, date) {
			out[c.ItemID] = c.Quantity
		}
	}
	return out, nil
}

func countKey(orgID, itemID string, date time.Time) string {
	return orgID + "|" + itemID + "|" + date.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// ─── Reports ─────────────────────────────────────────────────────────────────

var _ repository.ReportRepository = (*ReportRepo)(nil)

type ReportRepo struct{ s *Store }

func (r *ReportRepo) SalesTotals(ctx context.Context, orgID string, from, to time.Time) (repository.SalesTotals, error) {
	orders, _ := r.s.Orders().ListPaidBetween(ctx, orgID, from, to)
	var t repository.SalesTotals
	for _, o := range orders {
		t.OrderCount++
		t.Total = t.Total.Add(o.TotalPrice)
		switch o.PaymentMethod {
		case entity.PaymentCash:
			t.Cash = t.Cash.Add(o.TotalPrice)
		case entity.PaymentMPesa:
			t.MPesa = t.MPesa.Add(o.TotalPrice)
		case entity.PaymentCard:
			t.Card = t.Card.Add(o.TotalPrice)
		}
	}
	return t, nil
}

// ─── Plans ───────────────────────────────────────────────────────────────────

var _ repository.PlanRepository = (*PlanRepo)(nil)

type PlanRepo struct{ s *Store }

func (r *PlanRepo) List(_ context.Context) ([]*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Plan
	for _, p := range r.s.plans {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceKES.LessThan(out[j].PriceKES) })
	return out, nil
}

func (r *PlanRepo) Upsert(_ context.Context, p *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.plans[p.ID] = *p
	return nil
}

// ─── Tx ──────────────────────────────────────────────────────────────────────

var (
	_ ports.StockTxRunner   = (*TxRunner)(nil)
	_ ports.AccountTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta fn directamente sobre el store (sin rollback).
type TxRunner struct{ s *Store }

func (r *TxRunner) RunStock(_ context.Context, fn func(repository.MenuItemRepository, repository.StockRepository) error) error {
	if r.s.StockErr != nil {
		return r.s.StockErr
	}
	return fn(r.s.MenuItems(), r.s.Stock())
}

func (r *TxRunner) RunAccount(_ context.Context, fn func(repository.OrganizationRepository, repository.ProfileRepository) error) error {
	return fn(r.s.Organizations(), r.s.Profiles())
}
