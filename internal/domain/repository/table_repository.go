package repository

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// TableRepository define el puerto de persistencia para mesas.
type TableRepository interface {
	Create(ctx context.Context, t *entity.Table) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Table, error)
	Delete(ctx context.Context, orgID, id string) error
	// ListByOrg ordena por table_number.
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Table, error)
}
