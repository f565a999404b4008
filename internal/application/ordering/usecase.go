// Package ordering contiene la toma de pedidos por mesa, el tablero de cocina/barra
// y la sincronización de pedidos tomados sin conexión.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// dispatchTimeout límite para publicar una comanda; el pedido ya quedó guardado.
const dispatchTimeout = 5 * time.Second

// OrderUseCase orquesta pedidos: carrito → pedido → comandas por estación.
type OrderUseCase struct {
	orders     repository.OrderRepository
	items      repository.MenuItemRepository
	tables     repository.TableRepository
	dispatcher ports.TicketDispatcher
	log        zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. dispatcher nil = sin despacho de comandas.
func NewOrderUseCase(
	orders repository.OrderRepository,
	items repository.MenuItemRepository,
	tables repository.TableRepository,
	dispatcher ports.TicketDispatcher,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, items: items, tables: tables, dispatcher: dispatcher, log: log}
}

// ActiveOrder devuelve la cuenta abierta de la mesa o nil si está libre.
func (uc *OrderUseCase) ActiveOrder(ctx context.Context, orgID, tableID string) (*dto.OrderResponse, error) {
	if _, err := uc.table(ctx, orgID, tableID); err != nil {
		return nil, err
	}
	o, err := uc.orders.GetActiveByTable(ctx, orgID, tableID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	out := dto.FromOrder(o)
	return &out, nil
}

// PlaceOrder envía el carrito de la mesa. Sin cuenta abierta crea un pedido; con cuenta
// abierta el carrito la reemplaza y sólo el delta va a las estaciones.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, orgID, userID, tableID string, in dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	t, err := uc.table(ctx, orgID, tableID)
	if err != nil {
		return nil, err
	}
	cart, err := uc.buildCart(ctx, orgID, in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	current, err := uc.orders.GetActiveByTable(ctx, orgID, tableID)
	if err != nil {
		return nil, err
	}

	if current == nil {
		o := pos.NewOrder(orgID, tableID, cart)
		o.ID = uuid.New().String()
		o.TableNumber = t.TableNumber
		o.CreatedBy = userID
		o.CreatedAt = now
		o.UpdatedAt = now
		if err := uc.orders.Create(ctx, o); err != nil {
			return nil, err
		}
		uc.dispatch(ctx, o, cart, false)
		return &dto.PlaceOrderResponse{Order: dto.FromOrder(o), Created: true, Added: cart}, nil
	}

	added, err := pos.Accumulate(current, cart)
	if err != nil {
		return nil, err
	}
	current.UpdatedAt = now
	if err := uc.orders.UpdateItems(ctx, current); err != nil {
		return nil, err
	}
	uc.dispatch(ctx, current, added, true)
	if added == nil {
		added = []entity.OrderItem{}
	}
	return &dto.PlaceOrderResponse{Order: dto.FromOrder(current), Added: added}, nil
}

// StationBoard pedidos activos con ítems de la estación, más antiguos primero.
// Los ya listos en la estación se muestran para retiro.
func (uc *OrderUseCase) StationBoard(ctx context.Context, orgID, station string) ([]dto.StationOrderResponse, error) {
	if !entity.IsValidStation(station) {
		return nil, fmt.Errorf("%w: estación %q", domain.ErrInvalidInput, station)
	}
	active, err := uc.orders.ListActive(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StationOrderResponse, 0, len(active))
	for _, o := range active {
		items := pos.ItemsForStation(o.Items, station)
		if len(items) == 0 {
			continue
		}
		out = append(out, dto.StationOrderResponse{
			OrderID:       o.ID,
			TableNumber:   o.TableNumber,
			Items:         items,
			StationStatus: o.StationStatus(station),
			CreatedAt:     o.CreatedAt,
		})
	}
	return out, nil
}

// MarkStationReady marca la estación como lista en el pedido.
func (uc *OrderUseCase) MarkStationReady(ctx context.Context, orgID, orderID, station string) (*dto.OrderResponse, error) {
	if !entity.IsValidStation(station) {
		return nil, fmt.Errorf("%w: estación %q", domain.ErrInvalidInput, station)
	}
	o, err := uc.orders.GetByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if err := pos.MarkReady(o, station); err != nil {
		return nil, err
	}
	o.UpdatedAt = time.Now()
	if err := uc.orders.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	out := dto.FromOrder(o)
	return &out, nil
}

// SyncOffline reenvía la cola offline del dispositivo. Cada pedido se crea por separado
// como nuevo; un error no detiene el resto. Un offline_id ya recibido cuenta como sincronizado.
func (uc *OrderUseCase) SyncOffline(ctx context.Context, orgID, userID string, in dto.SyncRequest) (*dto.SyncResponse, error) {
	out := &dto.SyncResponse{OrderIDs: []string{}, Errors: []dto.SyncError{}}
	for _, entry := range in.Orders {
		id, err := uc.syncOne(ctx, orgID, userID, entry)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			uc.log.Warn().Err(err).Str("org_id", orgID).Str("offline_id", string(entry.OfflineID)).Msg("pedido offline no sincronizado")
			out.Failed++
			out.Errors = append(out.Errors, dto.SyncError{OfflineID: string(entry.OfflineID), Message: err.Error()})
			continue
		}
		out.Synced++
		out.OrderIDs = append(out.OrderIDs, id)
	}
	uc.log.Info().Str("org_id", orgID).Int("synced", out.Synced).Int("failed", out.Failed).Msg("cola offline procesada")
	return out, nil
}

func (uc *OrderUseCase) syncOne(ctx context.Context, orgID, userID string, entry dto.OfflineOrderRequest) (string, error) {
	offlineID := string(entry.OfflineID)
	if offlineID != "" {
		prev, err := uc.orders.GetByOfflineID(ctx, orgID, offlineID)
		if err != nil {
			return "", err
		}
		if prev != nil {
			return prev.ID, nil
		}
	}
	t, err := uc.table(ctx, orgID, entry.TableID)
	if err != nil {
		return "", err
	}
	cart, err := uc.buildCart(ctx, orgID, entry.Items)
	if err != nil {
		return "", err
	}

	now := time.Now()
	o := pos.NewOrder(orgID, t.ID, cart)
	o.ID = uuid.New().String()
	o.TableNumber = t.TableNumber
	o.Status = entity.OrderStatusPending
	o.OfflineID = offlineID
	o.CreatedBy = userID
	o.CreatedAt = now
	if entry.CreatedAt != nil && !entry.CreatedAt.IsZero() && entry.CreatedAt.Before(now) {
		o.CreatedAt = *entry.CreatedAt
	}
	o.UpdatedAt = now
	if err := uc.orders.Create(ctx, o); err != nil {
		if errors.Is(err, domain.ErrDuplicate) && offlineID != "" {
			// Otro reenvío del mismo dispositivo ganó la carrera.
			prev, gerr := uc.orders.GetByOfflineID(ctx, orgID, offlineID)
			if gerr == nil && prev != nil {
				return prev.ID, nil
			}
		}
		return "", err
	}
	uc.dispatch(ctx, o, cart, false)
	return o.ID, nil
}

// buildCart resuelve las líneas contra el menú de la organización.
func (uc *OrderUseCase) buildCart(ctx context.Context, orgID string, lines []dto.CartLineRequest) ([]entity.OrderItem, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	ids := make([]string, 0, len(lines))
	cartLines := make([]pos.CartLine, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID)
		cartLines = append(cartLines, pos.CartLine{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
	}
	found, err := uc.items.GetByIDs(ctx, orgID, ids)
	if err != nil {
		return nil, err
	}
	menu := make(map[string]*entity.MenuItem, len(found))
	for _, m := range found {
		menu[m.ID] = m
	}
	return pos.BuildCart(cartLines, menu)
}

func (uc *OrderUseCase) table(ctx context.Context, orgID, tableID string) (*entity.Table, error) {
	if tableID == "" {
		return nil, fmt.Errorf("%w: table_id es requerido", domain.ErrInvalidInput)
	}
	t, err := uc.tables.GetByID(ctx, orgID, tableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// dispatch publica una comanda por estación con las líneas nuevas. Los fallos se registran:
// el tablero de estación lee de la base y el pedido ya está confirmado.
func (uc *OrderUseCase) dispatch(ctx context.Context, o *entity.Order, added []entity.OrderItem, amended bool) {
	if uc.dispatcher == nil || len(added) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()
	for _, station := range []string{entity.StationKitchen, entity.StationBar} {
		lines := pos.ItemsForStation(added, station)
		if len(lines) == 0 {
			continue
		}
		ticket := ports.Ticket{
			OrderID:     o.ID,
			OrgID:       o.OrgID,
			TableID:     o.TableID,
			TableNumber: o.TableNumber,
			Station:     station,
			Items:       lines,
			Amended:     amended,
			CreatedAt:   time.Now(),
		}
		if err := uc.dispatcher.Dispatch(ctx, ticket); err != nil {
			uc.log.Error().Err(err).Str("order_id", o.ID).Str("station", station).Msg("no se pudo publicar la comanda")
		}
	}
}
