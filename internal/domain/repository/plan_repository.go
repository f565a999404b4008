package repository

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// PlanRepository catálogo público de planes.
type PlanRepository interface {
	List(ctx context.Context) ([]*entity.Plan, error)
	Upsert(ctx context.Context, p *entity.Plan) error
}
