package repository

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para usuarios y su membresía.
// Los métodos Get devuelven (nil, nil) si no hay fila.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	GetByInviteToken(ctx context.Context, token string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Profile, error)
}
