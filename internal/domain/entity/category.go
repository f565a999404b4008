package entity

import "time"

// Estaciones de preparación.
const (
	StationKitchen = "kitchen"
	StationBar     = "bar"
)

// IsValidStation informa si s es una estación conocida.
func IsValidStation(s string) bool {
	return s == StationKitchen || s == StationBar
}

// Category agrupa ítems del menú y define a qué estación se enrutan.
type Category struct {
	ID        string
	OrgID     string
	Name      string
	IsKitchen bool // false = barra
	CreatedAt time.Time
}

// Station devuelve la estación de la categoría.
func (c *Category) Station() string {
	if c.IsKitchen {
		return StationKitchen
	}
	return StationBar
}
