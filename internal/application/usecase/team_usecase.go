package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// Mensajes devueltos al invitar.
const (
	MsgMemberAdded = "User added to organization successfully!"
	MsgInviteSent  = "Invitation sent successfully!"
)

// TeamUseCase gestión del personal de la organización.
type TeamUseCase struct {
	profiles repository.ProfileRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(profiles repository.ProfileRepository) *TeamUseCase {
	return &TeamUseCase{profiles: profiles}
}

// List devuelve el equipo, más recientes primero.
func (uc *TeamUseCase) List(ctx context.Context, orgID string) ([]dto.ProfileResponse, error) {
	list, err := uc.profiles.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProfile(p))
	}
	return out, nil
}

// Invite agrega a la organización un usuario existente o crea una invitación pendiente.
func (uc *TeamUseCase) Invite(ctx context.Context, orgID string, in dto.InviteRequest) (*dto.InviteResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || in.Role == "" {
		return nil, fmt.Errorf("%w: email y role son requeridos", domain.ErrInvalidInput)
	}
	if err := assignableRole(in.Role); err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Role == entity.RoleOwner && existing.OrgID != "" {
			return nil, domain.ErrOwnerImmutable
		}
		existing.OrgID = orgID
		existing.Role = in.Role
		if existing.Status == entity.ProfileStatusInactive {
			existing.Status = entity.ProfileStatusActive
		}
		existing.UpdatedAt = now
		if err := uc.profiles.Update(ctx, existing); err != nil {
			return nil, err
		}
		return &dto.InviteResponse{Message: MsgMemberAdded, Member: dto.FromProfile(existing)}, nil
	}

	p := &entity.Profile{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		Email:       email,
		Role:        in.Role,
		Status:      entity.ProfileStatusInvited,
		InviteToken: uuid.New().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.InviteResponse{
		Message:     MsgInviteSent,
		Member:      dto.FromProfile(p),
		Invited:     true,
		InviteToken: p.InviteToken,
	}, nil
}

// UpdateRole cambia el rol de un miembro. El owner no se modifica y nadie pasa a owner.
func (uc *TeamUseCase) UpdateRole(ctx context.Context, orgID, memberID, role string) (*dto.ProfileResponse, error) {
	if err := assignableRole(role); err != nil {
		return nil, err
	}
	p, err := uc.member(ctx, orgID, memberID)
	if err != nil {
		return nil, err
	}
	if p.Role == entity.RoleOwner {
		return nil, domain.ErrOwnerImmutable
	}
	p.Role = role
	p.UpdatedAt = time.Now()
	if err := uc.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	out := dto.FromProfile(p)
	return &out, nil
}

// Remove desvincula al miembro: org_id y rol quedan vacíos. El owner no se elimina.
func (uc *TeamUseCase) Remove(ctx context.Context, orgID, memberID string) error {
	p, err := uc.member(ctx, orgID, memberID)
	if err != nil {
		return err
	}
	if p.Role == entity.RoleOwner {
		return domain.ErrOwnerImmutable
	}
	p.OrgID = ""
	p.Role = ""
	p.UpdatedAt = time.Now()
	return uc.profiles.Update(ctx, p)
}

// CurrentMember relee el perfil del usuario autenticado. nil si ya no existe.
func (uc *TeamUseCase) CurrentMember(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	if userID == "" {
		return nil, nil
	}
	p, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	out := dto.FromProfile(p)
	return &out, nil
}

func (uc *TeamUseCase) member(ctx context.Context, orgID, memberID string) (*entity.Profile, error) {
	p, err := uc.profiles.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OrgID != orgID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func assignableRole(role string) error {
	if !entity.IsValidRole(role) {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	if role == entity.RoleOwner {
		return fmt.Errorf("%w: no se puede asignar el rol owner", domain.ErrInvalidInput)
	}
	return nil
}
