package repository

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
}
