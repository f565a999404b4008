package ordering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/testutil"
)

type fixture struct {
	s        *testutil.Store
	uc       *OrderUseCase
	disp     *testutil.Dispatcher
	org      *entity.Organization
	table    *entity.Table
	chips    *entity.MenuItem
	tusker   *entity.MenuItem
	waiterID string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Mama Oliech")
	food := testutil.SeedCategory(t, s, org.ID, "Food", true)
	drinks := testutil.SeedCategory(t, s, org.ID, "Drinks", false)
	disp := &testutil.Dispatcher{}
	return &fixture{
		s:        s,
		uc:       NewOrderUseCase(s.Orders(), s.MenuItems(), s.Tables(), disp, zerolog.Nop()),
		disp:     disp,
		org:      org,
		table:    testutil.SeedTable(t, s, org.ID, "7"),
		chips:    testutil.SeedMenuItem(t, s, org.ID, food.ID, "Chips", 150),
		tusker:   testutil.SeedMenuItem(t, s, org.ID, drinks.ID, "Tusker", 300),
		waiterID: "waiter-1",
	}
}

func cart(lines ...dto.CartLineRequest) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{Items: lines}
}

func line(id string, qty int) dto.CartLineRequest {
	return dto.CartLineRequest{MenuItemID: id, Quantity: qty}
}

func TestPlaceOrder_CreaPedidoYComandasPorEstacion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	out, err := f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 2), line(f.tusker.ID, 1)))
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, entity.OrderStatusPending, out.Order.Status)
	assert.Equal(t, entity.StationStatusPending, out.Order.KitchenStatus)
	assert.Equal(t, entity.StationStatusPending, out.Order.BarStatus)
	assert.True(t, decimal.NewFromInt(600).Equal(out.Order.TotalPrice))
	assert.Equal(t, "7", out.Order.TableNumber)

	sent := f.disp.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, entity.StationKitchen, sent[0].Station)
	assert.Equal(t, "Chips", sent[0].Items[0].Name)
	assert.Equal(t, entity.StationBar, sent[1].Station)
	assert.False(t, sent[0].Amended)
}

func TestPlaceOrder_SoloBarraNaceConCocinaLista(t *testing.T) {
	f := setup(t)

	out, err := f.uc.PlaceOrder(context.Background(), f.org.ID, f.waiterID, f.table.ID, cart(line(f.tusker.ID, 2)))
	require.NoError(t, err)
	assert.Equal(t, entity.StationStatusReady, out.Order.KitchenStatus)
	assert.Equal(t, entity.StationStatusPending, out.Order.BarStatus)
	assert.Len(t, f.disp.Sent(), 1)
}

func TestPlaceOrder_AcumulaEnLaCuentaAbierta(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 1), line(f.tusker.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.MarkStationReady(ctx, f.org.ID, first.Order.ID, entity.StationKitchen)
	require.NoError(t, err)
	_, err = f.uc.MarkStationReady(ctx, f.org.ID, first.Order.ID, entity.StationBar)
	require.NoError(t, err)

	// El mesero agrega una cerveza: se reenvía el carrito completo.
	second, err := f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 1), line(f.tusker.ID, 2)))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, entity.OrderStatusPending, second.Order.Status)
	assert.Equal(t, entity.StationStatusReady, second.Order.KitchenStatus, "cocina no recibe nada nuevo")
	assert.Equal(t, entity.StationStatusPending, second.Order.BarStatus)
	assert.True(t, decimal.NewFromInt(750).Equal(second.Order.TotalPrice))
	require.Len(t, second.Added, 1)
	assert.Equal(t, 1, second.Added[0].Quantity)

	sent := f.disp.Sent()
	last := sent[len(sent)-1]
	assert.True(t, last.Amended)
	assert.Equal(t, entity.StationBar, last.Station)
}

func TestPlaceOrder_Errores(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart())
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, "otra-mesa", cart(line(f.chips.ID, 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line("fantasma", 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.s.MenuItems().SetAvailability(ctx, f.org.ID, f.chips.ID, false))
	_, err = f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 1)))
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestPlaceOrder_FalloDelDespachoNoAfectaAlPedido(t *testing.T) {
	f := setup(t)
	f.disp.Err = errors.New("broker caído")

	out, err := f.uc.PlaceOrder(context.Background(), f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 1)))
	require.NoError(t, err)

	active, err := f.uc.ActiveOrder(context.Background(), f.org.ID, f.table.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, out.Order.ID, active.ID)
}

func TestActiveOrder_MesaLibre(t *testing.T) {
	f := setup(t)

	out, err := f.uc.ActiveOrder(context.Background(), f.org.ID, f.table.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestStationBoard_FiltraPorEstacion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := testutil.SeedTable(t, f.s, f.org.ID, "8")

	_, err := f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 1), line(f.tusker.ID, 1)))
	require.NoError(t, err)
	_, err = f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, other.ID, cart(line(f.tusker.ID, 3)))
	require.NoError(t, err)

	kitchen, err := f.uc.StationBoard(ctx, f.org.ID, entity.StationKitchen)
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	require.Len(t, kitchen[0].Items, 1)
	assert.Equal(t, "Chips", kitchen[0].Items[0].Name)

	bar, err := f.uc.StationBoard(ctx, f.org.ID, entity.StationBar)
	require.NoError(t, err)
	assert.Len(t, bar, 2)

	_, err = f.uc.StationBoard(ctx, f.org.ID, "grill")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkStationReady_AmbasListasPasaAReady(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	placed, err := f.uc.PlaceOrder(ctx, f.org.ID, f.waiterID, f.table.ID, cart(line(f.chips.ID, 1), line(f.tusker.ID, 1)))
	require.NoError(t, err)

	out, err := f.uc.MarkStationReady(ctx, f.org.ID, placed.Order.ID, entity.StationKitchen)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, out.Status)

	out, err = f.uc.MarkStationReady(ctx, f.org.ID, placed.Order.ID, entity.StationBar)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, out.Status)

	_, err = f.uc.MarkStationReady(ctx, "otra-org", placed.Order.ID, entity.StationBar)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncOffline_ContinuaAnteErroresYNoDuplica(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	queuedAt := time.Now().Add(-30 * time.Minute)

	req := dto.SyncRequest{Orders: []dto.OfflineOrderRequest{
		{OfflineID: "off-1", TableID: f.table.ID, Items: []dto.CartLineRequest{line(f.chips.ID, 2)}, CreatedAt: &queuedAt},
		{OfflineID: "off-2", TableID: "mesa-borrada", Items: []dto.CartLineRequest{line(f.chips.ID, 1)}},
		{OfflineID: "off-3", TableID: f.table.ID, Items: []dto.CartLineRequest{line(f.tusker.ID, 1)}},
	}}

	out, err := f.uc.SyncOffline(ctx, f.org.ID, f.waiterID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Synced)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "off-2", out.Errors[0].OfflineID)

	o, err := f.s.Orders().GetByOfflineID(ctx, f.org.ID, "off-1")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.WithinDuration(t, queuedAt, o.CreatedAt, time.Second)

	// Reenvío de la misma cola: los ya recibidos no se duplican.
	again, err := f.uc.SyncOffline(ctx, f.org.ID, f.waiterID, dto.SyncRequest{Orders: req.Orders[:1]})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Synced)
	assert.Equal(t, o.ID, again.OrderIDs[0])

	active, err := f.s.Orders().ListActive(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
