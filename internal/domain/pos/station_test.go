package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

var (
	kitchenLine = entity.OrderItem{MenuItemID: "ugali", Quantity: 1, IsKitchenItem: true}
	barLine     = entity.OrderItem{MenuItemID: "tusker", Quantity: 1}
)

func TestNewOrder_EstacionSinItemsNaceLista(t *testing.T) {
	o := NewOrder("org", "mesa", []entity.OrderItem{barLine})

	assert.Equal(t, entity.StationStatusReady, o.KitchenStatus)
	assert.Equal(t, entity.StationStatusPending, o.BarStatus)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestMarkReady_AmbasEstacionesPasanAReady(t *testing.T) {
	o := NewOrder("org", "mesa", []entity.OrderItem{kitchenLine, barLine})

	require.NoError(t, MarkReady(o, entity.StationKitchen))
	assert.Equal(t, entity.OrderStatusPending, o.Status, "falta la barra")

	require.NoError(t, MarkReady(o, entity.StationBar))
	assert.Equal(t, entity.OrderStatusReady, o.Status)
}

func TestMarkReady_Errores(t *testing.T) {
	o := NewOrder("org", "mesa", []entity.OrderItem{kitchenLine})
	assert.ErrorIs(t, MarkReady(o, "grill"), domain.ErrInvalidInput)

	o.Status = entity.OrderStatusPaid
	assert.ErrorIs(t, MarkReady(o, entity.StationKitchen), domain.ErrOrderClosed)
}

func TestAccumulate_ReiniciaSoloLaEstacionConItemsNuevos(t *testing.T) {
	o := NewOrder("org", "mesa", []entity.OrderItem{kitchenLine, barLine})
	require.NoError(t, MarkReady(o, entity.StationKitchen))
	require.NoError(t, MarkReady(o, entity.StationBar))

	moreBeer := barLine
	moreBeer.Quantity = 2
	delta, err := Accumulate(o, []entity.OrderItem{kitchenLine, moreBeer})
	require.NoError(t, err)

	require.Len(t, delta, 1)
	assert.Equal(t, 1, delta[0].Quantity)
	assert.Equal(t, entity.StationStatusReady, o.KitchenStatus)
	assert.Equal(t, entity.StationStatusPending, o.BarStatus)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
}

func TestAccumulate_QuitarItemsNoReinicia(t *testing.T) {
	o := NewOrder("org", "mesa", []entity.OrderItem{kitchenLine, barLine})
	require.NoError(t, MarkReady(o, entity.StationKitchen))

	delta, err := Accumulate(o, []entity.OrderItem{kitchenLine})
	require.NoError(t, err)

	assert.Empty(t, delta)
	assert.Equal(t, entity.StationStatusReady, o.BarStatus, "la barra se quedó sin ítems")
	assert.Equal(t, entity.OrderStatusReady, o.Status)
}

func TestAccumulate_PedidoPagado(t *testing.T) {
	o := NewOrder("org", "mesa", []entity.OrderItem{kitchenLine})
	o.Status = entity.OrderStatusPaid

	_, err := Accumulate(o, []entity.OrderItem{kitchenLine})
	assert.ErrorIs(t, err, domain.ErrOrderClosed)
}

func TestItemsForStation(t *testing.T) {
	items := []entity.OrderItem{kitchenLine, barLine}
	assert.Equal(t, []entity.OrderItem{kitchenLine}, ItemsForStation(items, entity.StationKitchen))
	assert.Equal(t, []entity.OrderItem{barLine}, ItemsForStation(items, entity.StationBar))
}
