package pos

import (
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// Stations informa qué estaciones tienen trabajo en la lista de ítems.
func Stations(items []entity.OrderItem) (hasKitchen, hasBar bool) {
	for _, it := range items {
		if it.IsKitchenItem {
			hasKitchen = true
		} else {
			hasBar = true
		}
	}
	return hasKitchen, hasBar
}

// ItemsForStation filtra los ítems que se preparan en la estación.
func ItemsForStation(items []entity.OrderItem, station string) []entity.OrderItem {
	wantKitchen := station == entity.StationKitchen
	var out []entity.OrderItem
	for _, it := range items {
		if it.IsKitchenItem == wantKitchen {
			out = append(out, it)
		}
	}
	return out
}

// NewOrder arma un pedido nuevo: una estación sin ítems nace lista.
func NewOrder(orgID, tableID string, items []entity.OrderItem) *entity.Order {
	o := &entity.Order{
		OrgID:      orgID,
		TableID:    tableID,
		Items:      items,
		TotalPrice: Total(items),
	}
	o.KitchenStatus, o.BarStatus = InitialStationStatus(items)
	refreshStatus(o)
	return o
}

// InitialStationStatus estado inicial de cocina y barra para un pedido nuevo.
func InitialStationStatus(items []entity.OrderItem) (kitchen, bar string) {
	hasKitchen, hasBar := Stations(items)
	return stationStatus(hasKitchen), stationStatus(hasBar)
}

// Accumulate reemplaza la cuenta de la mesa por el carrito completo enviado.
// La estación que recibe ítems nuevos o cantidades mayores vuelve a pending;
// una estación que se queda sin ítems queda lista. Devuelve el delta para la comanda.
func Accumulate(o *entity.Order, next []entity.OrderItem) ([]entity.OrderItem, error) {
	if !o.IsActive() {
		return nil, domain.ErrOrderClosed
	}
	delta := Delta(o.Items, next)
	addKitchen, addBar := Stations(delta)
	hasKitchen, hasBar := Stations(next)

	if addKitchen {
		o.KitchenStatus = entity.StationStatusPending
	} else if !hasKitchen {
		o.KitchenStatus = entity.StationStatusReady
	}
	if addBar {
		o.BarStatus = entity.StationStatusPending
	} else if !hasBar {
		o.BarStatus = entity.StationStatusReady
	}

	o.Items = next
	o.TotalPrice = Total(next)
	refreshStatus(o)
	return delta, nil
}

// MarkReady marca la estación como lista; con ambas listas el pedido pasa a ready.
func MarkReady(o *entity.Order, station string) error {
	if !entity.IsValidStation(station) {
		return domain.ErrInvalidInput
	}
	if !o.IsActive() {
		return domain.ErrOrderClosed
	}
	if station == entity.StationKitchen {
		o.KitchenStatus = entity.StationStatusReady
	} else {
		o.BarStatus = entity.StationStatusReady
	}
	refreshStatus(o)
	return nil
}

func stationStatus(hasItems bool) string {
	if hasItems {
		return entity.StationStatusPending
	}
	return entity.StationStatusReady
}

func refreshStatus(o *entity.Order) {
	if o.KitchenStatus == entity.StationStatusReady && o.BarStatus == entity.StationStatusReady {
		o.Status = entity.OrderStatusReady
		return
	}
	o.Status = entity.OrderStatusPending
}
