package repository

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	// Delete borra la categoría; los ítems quedan sin categoría (ON DELETE SET NULL).
	Delete(ctx context.Context, orgID, id string) error
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Category, error)
}
