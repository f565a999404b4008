// Package analytics contiene los reportes de ventas, el cuadre de stock y el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// DashboardUseCase resumen operativo del día y del mes en curso.
type DashboardUseCase struct {
	reports  repository.ReportRepository
	orders   repository.OrderRepository
	items    repository.MenuItemRepository
	tables   repository.TableRepository
	profiles repository.ProfileRepository
	loc      *time.Location
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define dónde empieza "hoy".
func NewDashboardUseCase(
	reports repository.ReportRepository,
	orders repository.OrderRepository,
	items repository.MenuItemRepository,
	tables repository.TableRepository,
	profiles repository.ProfileRepository,
	loc *time.Location,
) *DashboardUseCase {
	return &DashboardUseCase{
		reports:  reports,
		orders:   orders,
		items:    items,
		tables:   tables,
		profiles: profiles,
		loc:      loc,
		now:      time.Now,
	}
}

// GetSummary construye el DashboardResponse de la organización.
//
// Consultas en paralelo:
//  1. SalesTotals(hoy) y SalesTotals(mes): sólo pedidos pagados
//  2. ListActive: pedidos abiertos y listos, mesas ocupadas
//  3. ListByOrg de menú, mesas y personal: conteos
//  4. ListLowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context, orgID string) (*dto.DashboardResponse, error) {
	now := uc.now()
	todayStart, todayEnd := pos.DayRange(now, uc.loc)
	monthStart, monthEnd := pos.MonthRange(now, uc.loc)

	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type ordersResult struct {
		orders []*entity.Order
		err    error
	}
	type itemsResult struct {
		items []*entity.MenuItem
		err   error
	}
	type countResult struct {
		n   int
		err error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	activeCh := make(chan ordersResult, 1)
	menuCh := make(chan itemsResult, 1)
	lowCh := make(chan itemsResult, 1)
	tablesCh := make(chan countResult, 1)
	staffCh := make(chan countResult, 1)

	go func() {
		t, err := uc.reports.SalesTotals(ctx, orgID, todayStart, todayEnd)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.reports.SalesTotals(ctx, orgID, monthStart, monthEnd)
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		o, err := uc.orders.ListActive(ctx, orgID)
		activeCh <- ordersResult{o, err}
	}()
	go func() {
		m, err := uc.items.ListByOrg(ctx, orgID, false)
		menuCh <- itemsResult{m, err}
	}()
	go func() {
		m, err := uc.items.ListLowStock(ctx, orgID)
		lowCh <- itemsResult{m, err}
	}()
	go func() {
		t, err := uc.tables.ListByOrg(ctx, orgID)
		tablesCh <- countResult{len(t), err}
	}()
	go func() {
		p, err := uc.profiles.ListByOrg(ctx, orgID)
		staffCh <- countResult{len(p), err}
	}()

	today := <-todayCh
	month := <-monthCh
	active := <-activeCh
	menu := <-menuCh
	low := <-lowCh
	tables := <-tablesCh
	staff := <-staffCh

	switch {
	case today.err != nil:
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	case month.err != nil:
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	case active.err != nil:
		return nil, fmt.Errorf("dashboard: pedidos activos: %w", active.err)
	case menu.err != nil:
		return nil, fmt.Errorf("dashboard: menú: %w", menu.err)
	case low.err != nil:
		return nil, fmt.Errorf("dashboard: bajo stock: %w", low.err)
	case tables.err != nil:
		return nil, fmt.Errorf("dashboard: mesas: %w", tables.err)
	case staff.err != nil:
		return nil, fmt.Errorf("dashboard: personal: %w", staff.err)
	}

	out := &dto.DashboardResponse{
		TodaySales:    today.totals.Total.Round(2),
		TodayOrders:   today.totals.OrderCount,
		MonthlySales:  month.totals.Total.Round(2),
		MonthlyOrders: month.totals.OrderCount,
		TableCount:    tables.n,
		MenuItemCount: len(menu.items),
		LowStockItems: dto.FromMenuItems(low.items),
		StaffCount:    staff.n,
		DateLabel:     monthLabel(now.In(uc.loc)),
	}
	occupied := make(map[string]struct{}, len(active.orders))
	for _, o := range active.orders {
		out.ActiveOrders++
		if o.Status == entity.OrderStatusReady {
			out.ReadyOrders++
		}
		occupied[o.TableID] = struct{}{}
	}
	out.OccupiedTables = len(occupied)
	return out, nil
}

// monthLabel etiqueta legible del mes, ej: "October 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
}
