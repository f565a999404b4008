package pos

import (
	"sort"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// ReconciliationLine cuadre diario de un ítem.
// Expected = Opening + Purchased - Sold; Diff = Actual - Expected cuando hay conteo.
type ReconciliationLine struct {
	ItemID        string
	Name          string
	Emoji         string
	StockQuantity int
	Opening       int
	Purchased     int
	Sold          int
	Expected      int
	Actual        *int
	Diff          *int
}

// Reconcile arma el cuadre por ítem. opening son los conteos del día anterior y
// counts los del día del reporte.
func Reconcile(items []*entity.MenuItem, opening, purchased, sold, counts map[string]int) []ReconciliationLine {
	out := make([]ReconciliationLine, 0, len(items))
	for _, it := range items {
		line := ReconciliationLine{
			ItemID:        it.ID,
			Name:          it.Name,
			Emoji:         it.Emoji,
			StockQuantity: it.StockQuantity,
			Opening:       opening[it.ID],
			Purchased:     purchased[it.ID],
			Sold:          sold[it.ID],
		}
		line.Expected = line.Opening + line.Purchased - line.Sold
		if actual, ok := counts[it.ID]; ok {
			diff := actual - line.Expected
			line.Actual = &actual
			line.Diff = &diff
		}
		out = append(out, line)
	}
	return out
}

// ItemSales cantidad vendida de un ítem (por nombre, como aparece en la cuenta).
type ItemSales struct {
	Name     string
	Quantity int
}

// TopItems agrega cantidades por nombre y devuelve las n mayores (empates por nombre).
func TopItems(orders []*entity.Order, n int) []ItemSales {
	counts := make(map[string]int)
	for _, o := range orders {
		for _, it := range o.Items {
			qty := it.Quantity
			if qty == 0 {
				qty = 1
			}
			counts[it.Name] += qty
		}
	}
	out := make([]ItemSales, 0, len(counts))
	for name, qty := range counts {
		out = append(out, ItemSales{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
