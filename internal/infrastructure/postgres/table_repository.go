package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo implementación de TableRepository sobre PostgreSQL.
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador.
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

func (r *TableRepo) Create(ctx context.Context, t *entity.Table) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tables (id, org_id, table_number, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.OrgID, t.TableNumber, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert table: %w", err)
	}
	return nil
}

func (r *TableRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Table, error) {
	var t entity.Table
	err := r.q.QueryRow(ctx,
		`SELECT id, org_id, table_number, created_at FROM tables WHERE org_id = $1 AND id = $2`, orgID, id,
	).Scan(&t.ID, &t.OrgID, &t.TableNumber, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	return &t, nil
}

func (r *TableRepo) Delete(ctx context.Context, orgID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tables WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	return nil
}

// ListByOrg ordena numéricamente cuando table_number es un número y alfabéticamente si no.
func (r *TableRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Table, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, org_id, table_number, created_at FROM tables
		WHERE org_id = $1
		ORDER BY (CASE WHEN table_number ~ '^[0-9]+$' THEN table_number::INTEGER END) NULLS LAST, table_number, created_at`,
		orgID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Table
	for rows.Next() {
		var t entity.Table
		if err := rows.Scan(&t.ID, &t.OrgID, &t.TableNumber, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
