package rabbitmq

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
)

const ticketWidth = 32

// FormatTicket texto de la comanda para impresora térmica de 32 columnas.
func FormatTicket(t ports.Ticket) string {
	var b strings.Builder
	rule := strings.Repeat("-", ticketWidth)

	title := strings.ToUpper(t.Station)
	if t.Amended {
		title += " (ADD-ON)"
	}
	b.WriteString(center(title))
	b.WriteByte('\n')
	b.WriteString(rule + "\n")
	table := pos.TableDisplayName(t.TableNumber, 0)
	if table == "Table 0" {
		table = "?"
	}
	fmt.Fprintf(&b, "Table: %s\n", table)
	fmt.Fprintf(&b, "Order: %s\n", pos.ShortRef(t.OrderID, 8))
	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Time:  %s\n", t.CreatedAt.In(pos.BusinessZone).Format("15:04"))
	}
	b.WriteString(rule + "\n")
	for _, it := range t.Items {
		fmt.Fprintf(&b, "%3dx %s\n", it.Quantity, it.Name)
	}
	b.WriteString(rule)
	return b.String()
}

func center(s string) string {
	if len(s) >= ticketWidth {
		return s
	}
	return strings.Repeat(" ", (ticketWidth-len(s))/2) + s
}
