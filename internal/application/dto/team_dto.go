package dto

// InviteRequest invitación de un miembro del equipo.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin barman waiter kitchen_master room_keeper"`
}

// InviteResponse resultado de la invitación. InviteToken sólo viene cuando se creó una
// invitación nueva (el envío del enlace queda a cargo del cliente).
type InviteResponse struct {
	Message     string          `json:"message"`
	Member      ProfileResponse `json:"member"`
	Invited     bool            `json:"invited"`
	InviteToken string          `json:"invite_token,omitempty"`
}

// UpdateRoleRequest cambio de rol de un miembro.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
