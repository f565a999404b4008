package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo catálogo de planes sobre PostgreSQL. features se guarda como JSONB.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// List devuelve los planes por precio ascendente.
func (r *PlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, price_kes, features, highlight FROM plans ORDER BY price_kes, name`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceKES, &p.Features, &p.Highlight); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza un plan por ID (usado por el seed).
func (r *PlanRepo) Upsert(ctx context.Context, p *entity.Plan) error {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO plans (id, name, price_kes, features, highlight) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price_kes = EXCLUDED.price_kes,
			features = EXCLUDED.features, highlight = EXCLUDED.highlight`,
		p.ID, p.Name, p.PriceKES, features, p.Highlight,
	)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}
