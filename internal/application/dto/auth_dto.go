package dto

import "time"

// SignupRequest registro de un restaurante nuevo: crea la organización y su owner.
type SignupRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,max=200"`
	FullName         string `json:"full_name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AcceptInviteRequest el invitado define nombre y contraseña.
type AcceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfileResponse salida de un usuario (sin password ni token).
type ProfileResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id,omitempty"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse token JWT + usuario + organización.
type AuthResponse struct {
	Token        string                `json:"token"`
	User         ProfileResponse       `json:"user"`
	Organization *OrganizationResponse `json:"organization,omitempty"`
}

// MeResponse usuario autenticado con su organización.
type MeResponse struct {
	User         ProfileResponse       `json:"user"`
	Organization *OrganizationResponse `json:"organization,omitempty"`
}
