package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// Estados de mesa en el tablero.
const (
	TableOpen     = "open"
	TableOccupied = "occupied"
)

// TableUseCase tablero de mesas del mesero.
type TableUseCase struct {
	tables repository.TableRepository
	orders repository.OrderRepository
}

// NewTableUseCase construye el caso de uso.
func NewTableUseCase(tables repository.TableRepository, orders repository.OrderRepository) *TableUseCase {
	return &TableUseCase{tables: tables, orders: orders}
}

// Board lista las mesas con su cuenta abierta. has_ready_food = pedido en ready.
func (uc *TableUseCase) Board(ctx context.Context, orgID string) ([]dto.TableResponse, error) {
	tables, err := uc.tables.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	active, err := uc.orders.ListActive(ctx, orgID)
	if err != nil {
		return nil, err
	}
	// ListActive viene ascendente: el último pedido de la mesa gana.
	byTable := make(map[string]*entity.Order, len(active))
	for _, o := range active {
		byTable[o.TableID] = o
	}

	out := make([]dto.TableResponse, 0, len(tables))
	for i, t := range tables {
		row := dto.TableResponse{
			ID:          t.ID,
			TableNumber: t.TableNumber,
			DisplayName: pos.TableDisplayName(t.TableNumber, i+1),
			Status:      TableOpen,
			CurrentBill: decimal.Zero,
		}
		if o, ok := byTable[t.ID]; ok {
			row.Status = TableOccupied
			row.OrderID = o.ID
			row.CurrentBill = o.TotalPrice
			row.HasReadyFood = o.Status == entity.OrderStatusReady
		}
		out = append(out, row)
	}
	return out, nil
}

// Create agrega una mesa.
func (uc *TableUseCase) Create(ctx context.Context, orgID string, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	number := strings.TrimSpace(in.TableNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: table_number es requerido", domain.ErrInvalidInput)
	}
	t := &entity.Table{ID: uuid.New().String(), OrgID: orgID, TableNumber: number, CreatedAt: time.Now()}
	if err := uc.tables.Create(ctx, t); err != nil {
		return nil, err
	}
	return &dto.TableResponse{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		DisplayName: t.TableNumber,
		Status:      TableOpen,
		CurrentBill: decimal.Zero,
	}, nil
}

// Delete elimina una mesa libre.
func (uc *TableUseCase) Delete(ctx context.Context, orgID, id string) error {
	t, err := uc.tables.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	active, err := uc.orders.GetActiveByTable(ctx, orgID, id)
	if err != nil {
		return err
	}
	if active != nil {
		return domain.ErrTableOccupied
	}
	return uc.tables.Delete(ctx, orgID, id)
}
