package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, address, phone, receipt_footer, plan_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Address, org.Phone, org.ReceiptFooter, nullIfEmpty(org.PlanID),
		org.Status, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `
		SELECT id, name, address, phone, receipt_footer, plan_id, status, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o entity.Organization
	var planID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Address, &o.Phone, &o.ReceiptFooter, &planID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	o.PlanID = deref(planID)
	return &o, nil
}

// Update actualiza los datos editables de la organización.
func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, address = $3, phone = $4, receipt_footer = $5, plan_id = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Address, org.Phone, org.ReceiptFooter, nullIfEmpty(org.PlanID), org.Status, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	return nil
}
