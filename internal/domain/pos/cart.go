// Package pos contiene las reglas del punto de venta que no dependen de infraestructura:
// armado del carrito, enrutamiento por estación, liquidación del pago y cuadre de stock.
package pos

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// CartLine línea enviada por el mesero: sólo id del ítem y cantidad.
// Precio, nombre y estación se resuelven contra el menú del servidor.
type CartLine struct {
	MenuItemID string
	Quantity   int
}

// BuildCart resuelve las líneas contra el menú y agrupa ítems repetidos conservando
// el orden de primera aparición.
func BuildCart(lines []CartLine, menu map[string]*entity.MenuItem) ([]entity.OrderItem, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	items := make([]entity.OrderItem, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad %d para %s", domain.ErrInvalidInput, l.Quantity, l.MenuItemID)
		}
		m, ok := menu[l.MenuItemID]
		if !ok || m == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, l.MenuItemID)
		}
		if !m.Available {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemUnavailable, m.Name)
		}
		if i, seen := index[m.ID]; seen {
			items[i].Quantity += l.Quantity
			continue
		}
		index[m.ID] = len(items)
		items = append(items, entity.OrderItem{
			MenuItemID:    m.ID,
			Name:          m.Name,
			Price:         m.Price,
			Emoji:         m.Emoji,
			Quantity:      l.Quantity,
			IsKitchenItem: m.IsKitchenItem,
		})
	}
	return items, nil
}

// Total suma precio × cantidad de todas las líneas.
func Total(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Delta devuelve lo que next agrega respecto de prev: ítems nuevos o cantidades aumentadas.
// Es lo que se imprime en la comanda cuando se acumula una cuenta.
func Delta(prev, next []entity.OrderItem) []entity.OrderItem {
	before := make(map[string]int, len(prev))
	for _, it := range prev {
		before[it.MenuItemID] += it.Quantity
	}
	var out []entity.OrderItem
	for _, it := range next {
		added := it.Quantity - before[it.MenuItemID]
		if added <= 0 {
			continue
		}
		line := it
		line.Quantity = added
		out = append(out, line)
	}
	return out
}

// SoldByItem suma cantidades vendidas por id de ítem.
func SoldByItem(orders []*entity.Order) map[string]int {
	sold := make(map[string]int)
	for _, o := range orders {
		for _, it := range o.Items {
			sold[it.MenuItemID] += it.Quantity
		}
	}
	return sold
}
