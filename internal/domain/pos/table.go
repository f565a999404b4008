package pos

import (
	"fmt"
	"strings"
)

// TableDisplayName nombre visible de la mesa: su número si es legible, si no "Table N"
// con la posición (1-based) en el listado. Números con guiones se tratan como UUID filtrados.
func TableDisplayName(tableNumber string, position int) string {
	n := strings.TrimSpace(tableNumber)
	if n == "" || strings.Contains(n, "-") {
		return fmt.Sprintf("Table %d", position)
	}
	return n
}
