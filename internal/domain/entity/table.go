package entity

import "time"

// Table mesa física del local.
type Table struct {
	ID          string
	OrgID       string
	TableNumber string
	CreatedAt   time.Time
}
