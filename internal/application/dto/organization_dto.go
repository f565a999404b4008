package dto

import "time"

// OrganizationResponse datos del restaurante.
type OrganizationResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	ReceiptFooter string    `json:"receipt_footer"`
	PlanID        string    `json:"plan_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// UpdateOrganizationRequest ajustes del restaurante (campos opcionales).
type UpdateOrganizationRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	ReceiptFooter *string `json:"receipt_footer"`
}
