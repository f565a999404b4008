package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
	"github.com/jhoicas/stasha-pos/pkg/currency"
)

// Rangos del reporte de ventas.
const (
	RangeToday = "today"
	RangeMonth = "month"
)

const topItemsLimit = 5

// ReportUseCase ventas, movimientos de stock y cuadre diario.
type ReportUseCase struct {
	orders  repository.OrderRepository
	items   repository.MenuItemRepository
	stock   repository.StockRepository
	reports repository.ReportRepository
	stockTx ports.StockTxRunner
	loc     *time.Location
	now     func() time.Time
	log     zerolog.Logger
}

// NewReportUseCase construye el caso de uso. loc define los límites de cada día.
func NewReportUseCase(
	orders repository.OrderRepository,
	items repository.MenuItemRepository,
	stock repository.StockRepository,
	reports repository.ReportRepository,
	stockTx ports.StockTxRunner,
	loc *time.Location,
	log zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		orders:  orders,
		items:   items,
		stock:   stock,
		reports: reports,
		stockTx: stockTx,
		loc:     loc,
		now:     time.Now,
		log:     log,
	}
}

// SalesSummary ventas pagadas de hoy o del mes: totales por método, top 5 ítems y
// movimientos de stock del período.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, orgID, period string) (*dto.SalesSummaryResponse, error) {
	var from, to time.Time
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "", RangeToday:
		period = RangeToday
		from, to = pos.DayRange(uc.now(), uc.loc)
	case RangeMonth:
		period = RangeMonth
		from, to = pos.MonthRange(uc.now(), uc.loc)
	default:
		return nil, fmt.Errorf("%w: range debe ser today o month", domain.ErrInvalidInput)
	}

	totals, err := uc.reports.SalesTotals(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: totales: %w", err)
	}
	paid, err := uc.orders.ListPaidBetween(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: pedidos: %w", err)
	}
	movements, err := uc.stock.ListTransactions(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: movimientos: %w", err)
	}

	top := pos.TopItems(paid, topItemsLimit)
	out := &dto.SalesSummaryResponse{
		Range:          period,
		From:           from,
		To:             to,
		OrderCount:     totals.OrderCount,
		Total:          totals.Total,
		TotalFormatted: currency.FormatKES(totals.Total),
		Cash:           totals.Cash,
		MPesa:          totals.MPesa,
		Card:           totals.Card,
		TopItems:       make([]dto.TopItemDTO, 0, len(top)),
		StockMovements: fromMovements(movements),
	}
	for _, t := range top {
		out.TopItems = append(out.TopItems, dto.TopItemDTO{Name: t.Name, Quantity: t.Quantity})
	}
	return out, nil
}

// StockMovements ledger entre dos días inclusive (YYYY-MM-DD), más recientes primero.
// Sin from = hoy; sin to = el mismo día que from.
func (uc *ReportUseCase) StockMovements(ctx context.Context, orgID, fromDay, toDay string) ([]dto.StockMovementDTO, error) {
	now := uc.now()
	from, err := pos.ParseDay(fromDay, now, uc.loc)
	if err != nil {
		return nil, err
	}
	to := from
	if strings.TrimSpace(toDay) != "" {
		if to, err = pos.ParseDay(toDay, now, uc.loc); err != nil {
			return nil, err
		}
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to es anterior a from", domain.ErrInvalidInput)
	}
	list, err := uc.stock.ListTransactions(ctx, orgID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return fromMovements(list), nil
}

// Reconciliation cuadre del día: apertura (conteo del día anterior) + compras - ventas
// pagadas contra el conteo físico.
func (uc *ReportUseCase) Reconciliation(ctx context.Context, orgID, day string) (*dto.ReconciliationResponse, error) {
	date, err := pos.ParseDay(day, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	from, to := pos.DayRange(date, uc.loc)

	items, err := uc.items.ListByOrg(ctx, orgID, false)
	if err != nil {
		return nil, fmt.Errorf("cuadre: menú: %w", err)
	}
	opening, err := uc.stock.CountsByItem(ctx, orgID, date.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("cuadre: apertura: %w", err)
	}
	purchased, err := uc.stock.PurchasedByItem(ctx, orgID, date)
	if err != nil {
		return nil, fmt.Errorf("cuadre: compras: %w", err)
	}
	paid, err := uc.orders.ListPaidBetween(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("cuadre: ventas: %w", err)
	}
	counts, err := uc.stock.CountsByItem(ctx, orgID, date)
	if err != nil {
		return nil, fmt.Errorf("cuadre: conteos: %w", err)
	}

	lines := pos.Reconcile(items, opening, purchased, pos.SoldByItem(paid), counts)
	out := &dto.ReconciliationResponse{
		Date:  date.Format(pos.DateLayout),
		Lines: make([]dto.ReconciliationLineDTO, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.ReconciliationLineDTO{
			ItemID:        l.ItemID,
			Name:          l.Name,
			Emoji:         l.Emoji,
			StockQuantity: l.StockQuantity,
			Opening:       l.Opening,
			Purchased:     l.Purchased,
			Sold:          l.Sold,
			Expected:      l.Expected,
			Actual:        l.Actual,
			Difference:    l.Diff,
		})
	}
	return out, nil
}

// AddPurchase registra una compra del día: suma al cuadre, al ledger y al stock.
func (uc *ReportUseCase) AddPurchase(ctx context.Context, orgID string, in dto.PurchaseRequest) (*dto.StockMovementDTO, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	date, err := pos.ParseDay(in.Date, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	item, err := uc.item(ctx, orgID, in.ItemID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	tx := &entity.StockTransaction{
		ID:           uuid.New().String(),
		OrgID:        orgID,
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     in.Quantity,
		Type:         entity.StockTxPurchase,
		Note:         "Purchase " + date.Format(pos.DateLayout),
		CreatedAt:    now,
	}
	err = uc.stockTx.RunStock(ctx, func(items repository.MenuItemRepository, stock repository.StockRepository) error {
		if err := stock.AddPurchase(ctx, &entity.StockPurchase{
			ID:        uuid.New().String(),
			OrgID:     orgID,
			ItemID:    item.ID,
			Quantity:  in.Quantity,
			Date:      date,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		if err := stock.AddTransaction(ctx, tx); err != nil {
			return err
		}
		return items.AdjustStock(ctx, orgID, item.ID, in.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("compra: %w", err)
	}
	uc.log.Info().Str("org_id", orgID).Str("item_id", item.ID).Int("quantity", in.Quantity).Msg("compra de stock registrada")
	out := fromMovement(tx)
	return &out, nil
}

// SubmitCount guarda el conteo físico de cierre; un segundo conteo del mismo día lo reemplaza.
func (uc *ReportUseCase) SubmitCount(ctx context.Context, orgID string, in dto.CountRequest) error {
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrInvalidInput)
	}
	date, err := pos.ParseDay(in.Date, uc.now(), uc.loc)
	if err != nil {
		return err
	}
	item, err := uc.item(ctx, orgID, in.ItemID)
	if err != nil {
		return err
	}
	return uc.stock.UpsertCount(ctx, &entity.StockCount{OrgID: orgID, ItemID: item.ID, Quantity: in.Quantity, Date: date})
}

// RecordAdjustment registra una merma (descuenta) o una devolución (repone).
func (uc *ReportUseCase) RecordAdjustment(ctx context.Context, orgID string, in dto.AdjustmentRequest) (*dto.StockMovementDTO, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	var delta int
	switch in.Type {
	case entity.StockTxWastage:
		delta = -in.Quantity
	case entity.StockTxReturn:
		delta = in.Quantity
	default:
		return nil, fmt.Errorf("%w: type debe ser wastage o return", domain.ErrInvalidInput)
	}
	item, err := uc.item(ctx, orgID, in.ItemID)
	if err != nil {
		return nil, err
	}

	tx := &entity.StockTransaction{
		ID:           uuid.New().String(),
		OrgID:        orgID,
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     delta,
		Type:         in.Type,
		Note:         strings.TrimSpace(in.Note),
		CreatedAt:    uc.now(),
	}
	err = uc.stockTx.RunStock(ctx, func(items repository.MenuItemRepository, stock repository.StockRepository) error {
		if err := stock.AddTransaction(ctx, tx); err != nil {
			return err
		}
		return items.AdjustStock(ctx, orgID, item.ID, delta)
	})
	if err != nil {
		return nil, fmt.Errorf("ajuste de stock: %w", err)
	}
	out := fromMovement(tx)
	return &out, nil
}

func (uc *ReportUseCase) item(ctx context.Context, orgID, id string) (*entity.MenuItem, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: item_id es requerido", domain.ErrInvalidInput)
	}
	m, err := uc.items.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func fromMovements(list []*entity.StockTransaction) []dto.StockMovementDTO {
	out := make([]dto.StockMovementDTO, 0, len(list))
	for _, t := range list {
		out = append(out, fromMovement(t))
	}
	return out
}

func fromMovement(t *entity.StockTransaction) dto.StockMovementDTO {
	name := t.MenuItemName
	if name == "" {
		name = "Unknown Item"
	}
	return dto.StockMovementDTO{
		ID:         t.ID,
		MenuItemID: t.MenuItemID,
		ItemName:   name,
		Quantity:   t.Quantity,
		Type:       t.Type,
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
	}
}
