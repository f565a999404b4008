package entity

import "time"

// Estados de una organización.
const (
	OrgStatusActive    = "active"
	OrgStatusSuspended = "suspended"
)

// DefaultReceiptFooter texto al pie del recibo cuando la organización no define uno.
const DefaultReceiptFooter = "Thank you!"

// Organization representa un restaurante/bar (tenant del sistema).
type Organization struct {
	ID            string
	Name          string
	Address       string
	Phone         string
	ReceiptFooter string
	PlanID        string // vacío = sin plan
	Status        string // active, suspended
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Footer devuelve el pie de recibo efectivo.
func (o *Organization) Footer() string {
	if o.ReceiptFooter == "" {
		return DefaultReceiptFooter
	}
	return o.ReceiptFooter
}
