package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de sólo lectura para el dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals agrega los pedidos pagados del período por método de pago.
func (r *ReportRepo) SalesTotals(ctx context.Context, orgID string, from, to time.Time) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                   AS order_count,
	    COALESCE(SUM(total_price), 0)                                              AS total,
	    COALESCE(SUM(total_price) FILTER (WHERE payment_method = 'Cash'),   0)     AS cash,
	    COALESCE(SUM(total_price) FILTER (WHERE payment_method = 'M-Pesa'), 0)     AS mpesa,
	    COALESCE(SUM(total_price) FILTER (WHERE payment_method = 'Card'),   0)     AS card
	FROM orders
	WHERE org_id = $1
	  AND status = 'paid'
	  AND paid_at >= $2 AND paid_at < $3`

	var t repository.SalesTotals
	err := r.q.QueryRow(ctx, query, orgID, from, to).Scan(&t.OrderCount, &t.Total, &t.Cash, &t.MPesa, &t.Card)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("reports.SalesTotals: %w", err)
	}
	return t, nil
}
