package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// OrganizationUseCase ajustes del restaurante y estado de la suscripción.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso con el puerto de persistencia.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Get obtiene la organización. Devuelve domain.ErrNotFound si no existe.
func (uc *OrganizationUseCase) Get(ctx context.Context, orgID string) (*dto.OrganizationResponse, error) {
	org, err := uc.load(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.FromOrganization(org), nil
}

// UpdateSettings aplica los campos enviados. Un pie de recibo vacío vuelve al valor por defecto.
func (uc *OrganizationUseCase) UpdateSettings(ctx context.Context, orgID string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.load(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		org.Name = name
	}
	if in.Address != nil {
		org.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		org.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.ReceiptFooter != nil {
		org.ReceiptFooter = strings.TrimSpace(*in.ReceiptFooter)
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return dto.FromOrganization(org), nil
}

// IsActive informa si la organización existe y no está suspendida.
// Devuelve error solo ante fallos de infraestructura.
func (uc *OrganizationUseCase) IsActive(ctx context.Context, orgID string) (bool, error) {
	if orgID == "" {
		return false, nil
	}
	org, err := uc.repo.GetByID(ctx, orgID)
	if err != nil {
		return false, err
	}
	return org != nil && org.Status == entity.OrgStatusActive, nil
}

func (uc *OrganizationUseCase) load(ctx context.Context, orgID string) (*entity.Organization, error) {
	org, err := uc.repo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}
