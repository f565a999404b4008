package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, org_id, name, is_kitchen, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.OrgID, c.Name, c.IsKitchen, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría de la organización.
func (r *CategoryRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, org_id, name, is_kitchen, created_at FROM categories WHERE org_id = $1 AND id = $2`,
		orgID, id,
	).Scan(&c.ID, &c.OrgID, &c.Name, &c.IsKitchen, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update cambia nombre y estación.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $3, is_kitchen = $4 WHERE org_id = $1 AND id = $2`,
		c.OrgID, c.ID, c.Name, c.IsKitchen,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina la categoría; menu_items.category_id pasa a NULL por la FK.
func (r *CategoryRepo) Delete(ctx context.Context, orgID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListByOrg lista por nombre.
func (r *CategoryRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, org_id, name, is_kitchen, created_at FROM categories WHERE org_id = $1 ORDER BY name`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.IsKitchen, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
