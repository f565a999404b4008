package entity

import "time"

// Roles válidos para Profile.
const (
	RoleOwner         = "owner"
	RoleAdmin         = "admin"
	RoleBarman        = "barman"
	RoleWaiter        = "waiter"
	RoleKitchenMaster = "kitchen_master"
	RoleRoomKeeper    = "room_keeper"
)

// Estados de un perfil.
const (
	ProfileStatusActive   = "active"
	ProfileStatusInvited  = "invited"
	ProfileStatusInactive = "inactive"
)

// IsValidRole informa si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleBarman, RoleWaiter, RoleKitchenMaster, RoleRoomKeeper:
		return true
	}
	return false
}

// Profile representa un usuario del sistema y su membresía (rol) en una organización.
type Profile struct {
	ID           string
	OrgID        string // vacío si fue removido de la organización
	Email        string
	FullName     string
	PasswordHash string // bcrypt; vacío mientras la invitación esté pendiente
	Role         string
	Status       string
	InviteToken  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
