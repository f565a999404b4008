package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
	"github.com/jhoicas/stasha-pos/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de restaurante, login e invitaciones.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	orgRepo     repository.OrganizationRepository
	tx          ports.AccountTxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profileRepo repository.ProfileRepository, orgRepo repository.OrganizationRepository, tx ports.AccountTxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profileRepo: profileRepo, orgRepo: orgRepo, tx: tx, jwtCfg: jwtCfg}
}

// Signup crea la organización y su owner en una sola transacción y devuelve la sesión.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.OrganizationName) == "" || email == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: organization_name, full_name y email son requeridos", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	existing, err := uc.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.OrganizationName),
		Status:    entity.OrgStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &entity.Profile{
		ID:           uuid.New().String(),
		OrgID:        org.ID,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		Role:         entity.RoleOwner,
		Status:       entity.ProfileStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunAccount(ctx, func(orgs repository.OrganizationRepository, profiles repository.ProfileRepository) error {
		if err := orgs.Create(ctx, org); err != nil {
			return err
		}
		return profiles.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	return uc.session(owner, org)
}

// Login verifica email/password, genera JWT y retorna token + usuario + organización.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	p, err := uc.profileRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if p == nil || p.PasswordHash == "" {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if p.Status != entity.ProfileStatusActive || p.OrgID == "" {
		return nil, domain.ErrForbidden
	}
	org, err := uc.orgRepo.GetByID(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}
	return uc.session(p, org)
}

// AcceptInvite activa un perfil invitado: define nombre y contraseña y consume el token.
func (uc *AuthUseCase) AcceptInvite(ctx context.Context, in dto.AcceptInviteRequest) (*dto.AuthResponse, error) {
	if in.Token == "" {
		return nil, fmt.Errorf("%w: token requerido", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	p, err := uc.profileRepo.GetByInviteToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != entity.ProfileStatusInvited {
		return nil, domain.ErrNotFound
	}
	if p.OrgID == "" {
		return nil, domain.ErrForbidden
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p.PasswordHash = string(hash)
	if name := strings.TrimSpace(in.FullName); name != "" {
		p.FullName = name
	}
	p.Status = entity.ProfileStatusActive
	p.InviteToken = ""
	p.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	org, err := uc.orgRepo.GetByID(ctx, p.OrgID)
	if err != nil {
		return nil, err
	}
	return uc.session(p, org)
}

// Me devuelve el usuario autenticado y su organización.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	p, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	out := &dto.MeResponse{User: dto.FromProfile(p)}
	if p.OrgID != "" {
		org, err := uc.orgRepo.GetByID(ctx, p.OrgID)
		if err != nil {
			return nil, err
		}
		out.Organization = dto.FromOrganization(org)
	}
	return out, nil
}

func (uc *AuthUseCase) session(p *entity.Profile, org *entity.Organization) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, p.OrgID, p.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:        token,
		User:         dto.FromProfile(p),
		Organization: dto.FromOrganization(org),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
