package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/testutil"
)

// 2026-03-10 14:00 EAT
var fixedNow = time.Date(2026, 3, 10, 14, 0, 0, 0, pos.BusinessZone)

type fixture struct {
	s      *testutil.Store
	org    *entity.Organization
	chips  *entity.MenuItem
	tusker *entity.MenuItem
	table  *entity.Table
}

func setup(t *testing.T) *fixture {
	t.Helper()
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Mama Oliech")
	food := testutil.SeedCategory(t, s, org.ID, "Food", true)
	drinks := testutil.SeedCategory(t, s, org.ID, "Drinks", false)
	return &fixture{
		s:      s,
		org:    org,
		chips:  testutil.SeedMenuItem(t, s, org.ID, food.ID, "Chips", 150),
		tusker: testutil.SeedMenuItem(t, s, org.ID, drinks.ID, "Tusker", 300),
		table:  testutil.SeedTable(t, s, org.ID, "1"),
	}
}

func (f *fixture) order(id, status, method string, at time.Time, items ...entity.OrderItem) {
	o := &entity.Order{
		ID: id, OrgID: f.org.ID, TableID: f.table.ID, Items: items,
		TotalPrice: pos.Total(items), Status: status, PaymentMethod: method, CreatedAt: at,
	}
	if status == entity.OrderStatusPaid {
		o.PaidAt = &at
	}
	f.s.Orders().SetOrder(o)
}

func (f *fixture) reports() *ReportUseCase {
	uc := NewReportUseCase(f.s.Orders(), f.s.MenuItems(), f.s.Stock(), f.s.Reports(), f.s.TxRunner(), pos.BusinessZone, zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func item(m *entity.MenuItem, qty int) entity.OrderItem {
	return entity.OrderItem{MenuItemID: m.ID, Name: m.Name, Price: m.Price, Quantity: qty}
}

func TestSalesSummary_SoloPedidosPagadosDelRango(t *testing.T) {
	f := setup(t)
	f.order("o-1", entity.OrderStatusPaid, entity.PaymentCash, fixedNow.Add(-time.Hour), item(f.chips, 2))
	f.order("o-2", entity.OrderStatusPaid, entity.PaymentMPesa, fixedNow.Add(-2*time.Hour), item(f.tusker, 3), item(f.chips, 1))
	f.order("o-3", entity.OrderStatusReady, "", fixedNow, item(f.tusker, 10))
	f.order("o-4", entity.OrderStatusPaid, entity.PaymentCard, fixedNow.AddDate(0, 0, -3), item(f.tusker, 1))

	today, err := f.reports().SalesSummary(context.Background(), f.org.ID, "today")
	require.NoError(t, err)
	assert.Equal(t, 2, today.OrderCount)
	assert.True(t, decimal.NewFromInt(1350).Equal(today.Total))
	assert.True(t, decimal.NewFromInt(300).Equal(today.Cash))
	assert.True(t, decimal.NewFromInt(1050).Equal(today.MPesa))
	assert.True(t, today.Card.IsZero())
	assert.Equal(t, "KES 1,350.00", today.TotalFormatted)
	require.Len(t, today.TopItems, 2)
	assert.Equal(t, dto.TopItemDTO{Name: "Chips", Quantity: 3}, today.TopItems[0])

	month, err := f.reports().SalesSummary(context.Background(), f.org.ID, "month")
	require.NoError(t, err)
	assert.Equal(t, 3, month.OrderCount)
	assert.True(t, decimal.NewFromInt(300).Equal(month.Card))

	_, err = f.reports().SalesSummary(context.Background(), f.org.ID, "year")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddPurchase_SumaStockYLedger(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	out, err := f.reports().AddPurchase(ctx, f.org.ID, dto.PurchaseRequest{ItemID: f.tusker.ID, Quantity: 24})
	require.NoError(t, err)
	assert.Equal(t, entity.StockTxPurchase, out.Type)
	assert.Equal(t, 24, out.Quantity)
	assert.Equal(t, "Tusker", out.ItemName)

	m, err := f.s.MenuItems().GetByID(ctx, f.org.ID, f.tusker.ID)
	require.NoError(t, err)
	assert.Equal(t, 74, m.StockQuantity)

	_, err = f.reports().AddPurchase(ctx, f.org.ID, dto.PurchaseRequest{ItemID: f.tusker.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.reports().AddPurchase(ctx, f.org.ID, dto.PurchaseRequest{ItemID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconciliation_AperturaComprasVentasYConteo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.reports()

	require.NoError(t, uc.SubmitCount(ctx, f.org.ID, dto.CountRequest{ItemID: f.tusker.ID, Quantity: 20, Date: "2026-03-09"}))
	_, err := uc.AddPurchase(ctx, f.org.ID, dto.PurchaseRequest{ItemID: f.tusker.ID, Quantity: 12})
	require.NoError(t, err)
	f.order("o-1", entity.OrderStatusPaid, entity.PaymentCash, fixedNow.Add(-time.Hour), item(f.tusker, 5))
	f.order("o-2", entity.OrderStatusPending, "", fixedNow, item(f.tusker, 4))
	require.NoError(t, uc.SubmitCount(ctx, f.org.ID, dto.CountRequest{ItemID: f.tusker.ID, Quantity: 25}))
	// Un segundo conteo del día reemplaza al primero.
	require.NoError(t, uc.SubmitCount(ctx, f.org.ID, dto.CountRequest{ItemID: f.tusker.ID, Quantity: 26}))

	out, err := uc.Reconciliation(ctx, f.org.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", out.Date)

	var line *dto.ReconciliationLineDTO
	for i := range out.Lines {
		if out.Lines[i].ItemID == f.tusker.ID {
			line = &out.Lines[i]
		}
	}
	require.NotNil(t, line)
	assert.Equal(t, 20, line.Opening)
	assert.Equal(t, 12, line.Purchased)
	assert.Equal(t, 5, line.Sold)
	assert.Equal(t, 27, line.Expected)
	require.NotNil(t, line.Actual)
	assert.Equal(t, 26, *line.Actual)
	assert.Equal(t, -1, *line.Difference)

	for _, l := range out.Lines {
		if l.ItemID == f.chips.ID {
			assert.Nil(t, l.Actual, "sin conteo no hay diferencia")
		}
	}

	_, err = uc.Reconciliation(ctx, f.org.ID, "10-03-2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordAdjustment_MermaYDevolucion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	uc := f.reports()

	waste, err := uc.RecordAdjustment(ctx, f.org.ID, dto.AdjustmentRequest{ItemID: f.chips.ID, Quantity: 3, Type: entity.StockTxWastage, Note: "se quemaron"})
	require.NoError(t, err)
	assert.Equal(t, -3, waste.Quantity)

	ret, err := uc.RecordAdjustment(ctx, f.org.ID, dto.AdjustmentRequest{ItemID: f.chips.ID, Quantity: 1, Type: entity.StockTxReturn})
	require.NoError(t, err)
	assert.Equal(t, 1, ret.Quantity)

	m, err := f.s.MenuItems().GetByID(ctx, f.org.ID, f.chips.ID)
	require.NoError(t, err)
	assert.Equal(t, 48, m.StockQuantity)

	_, err = uc.RecordAdjustment(ctx, f.org.ID, dto.AdjustmentRequest{ItemID: f.chips.ID, Quantity: 1, Type: entity.StockTxSale})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	moves, err := uc.StockMovements(ctx, f.org.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, moves, 2)
}

func TestStockMovements_RangoInvalido(t *testing.T) {
	f := setup(t)

	_, err := f.reports().StockMovements(context.Background(), f.org.ID, "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_Resumen(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.SeedProfile(t, f.s, f.org.ID, "owner@example.com", entity.RoleOwner)
	testutil.SeedProfile(t, f.s, f.org.ID, "waiter@example.com", entity.RoleWaiter)
	other := testutil.SeedTable(t, f.s, f.org.ID, "2")
	require.NoError(t, f.s.MenuItems().AdjustStock(ctx, f.org.ID, f.chips.ID, -45))

	f.order("o-1", entity.OrderStatusPaid, entity.PaymentCash, fixedNow.Add(-time.Hour), item(f.chips, 2))
	f.order("o-2", entity.OrderStatusPaid, entity.PaymentCard, fixedNow.AddDate(0, 0, -2), item(f.tusker, 1))
	f.order("o-3", entity.OrderStatusReady, "", fixedNow, item(f.tusker, 1))
	f.s.Orders().SetOrder(&entity.Order{ID: "o-4", OrgID: f.org.ID, TableID: other.ID, Status: entity.OrderStatusPending, CreatedAt: fixedNow})

	uc := NewDashboardUseCase(f.s.Reports(), f.s.Orders(), f.s.MenuItems(), f.s.Tables(), f.s.Profiles(), pos.BusinessZone)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.GetSummary(ctx, f.org.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(out.TodaySales))
	assert.Equal(t, 1, out.TodayOrders)
	assert.True(t, decimal.NewFromInt(600).Equal(out.MonthlySales))
	assert.Equal(t, 2, out.MonthlyOrders)
	assert.Equal(t, 2, out.ActiveOrders)
	assert.Equal(t, 1, out.ReadyOrders)
	assert.Equal(t, 2, out.TableCount)
	assert.Equal(t, 2, out.OccupiedTables)
	assert.Equal(t, 2, out.MenuItemCount)
	assert.Equal(t, 2, out.StaffCount)
	require.Len(t, out.LowStockItems, 1)
	assert.Equal(t, "Chips", out.LowStockItems[0].Name)
	assert.Equal(t, "March 2026", out.DateLabel)
}
