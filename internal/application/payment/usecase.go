// Package payment cobra pedidos (efectivo, tarjeta, M-Pesa), procesa el callback de la
// pasarela móvil y genera el recibo.
package payment

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// Mensajes y estados expuestos al cliente y a la pasarela.
const (
	MsgSTKPushSent  = "STK Push Sent! Check your phone."
	CallbackOK      = "ok"
	CallbackIgnored = "ignored"
)

const (
	gatewayTimeout  = 30 * time.Second
	saleNoteRefLen  = 8
	accountRefLen   = 5
	accountRefLabel = "Stasha POS "
	stkDescription  = "Payment for Order"
)

// Config opciones del cobro.
type Config struct {
	// CallbackToken si no está vacío, el callback debe traer el mismo token.
	CallbackToken string
}

// PaymentUseCase cobro y cierre de pedidos.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	orgs     repository.OrganizationRepository
	stockTx  ports.StockTxRunner
	gateway  ports.MobileMoneyGateway
	parser   ports.CallbackParser
	receipts ports.ReceiptGenerator
	cfg      Config
	log      zerolog.Logger
}

// NewPaymentUseCase construye el caso de uso. gateway nil = pagos móviles deshabilitados.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	orgs repository.OrganizationRepository,
	stockTx ports.StockTxRunner,
	gateway ports.MobileMoneyGateway,
	parser ports.CallbackParser,
	receipts ports.ReceiptGenerator,
	cfg Config,
	log zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:   orders,
		orgs:     orgs,
		stockTx:  stockTx,
		gateway:  gateway,
		parser:   parser,
		receipts: receipts,
		cfg:      cfg,
		log:      log,
	}
}

// Pay cierra el pedido con el método indicado. Un pedido que cocina o barra aún no
// marcan como listo exige force. El ledger de venta se escribe después del cobro.
func (uc *PaymentUseCase) Pay(ctx context.Context, orgID, orderID string, in dto.PayRequest) (*dto.OrderResponse, error) {
	o, err := uc.openOrder(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == entity.OrderStatusPending && !in.Force {
		return nil, domain.ErrOrderNotReady
	}
	s, err := pos.Settle(o.TotalPrice, in.PaymentMethod, in.AmountTendered)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
		}
		return nil, err
	}
	if err := uc.markPaid(ctx, o, s, ""); err != nil {
		return nil, err
	}
	uc.log.Info().Str("org_id", orgID).Str("order_id", o.ID).Str("method", s.Method).
		Str("total", o.TotalPrice.StringFixed(2)).Msg("pedido cobrado")
	out := dto.FromOrder(o)
	return &out, nil
}

// InitiateMobileMoney envía el STK push al teléfono del cliente por el total del pedido
// (redondeado hacia arriba a KES enteros).
func (uc *PaymentUseCase) InitiateMobileMoney(ctx context.Context, orgID, orderID, phone string) (*dto.MobileMoneyResponse, error) {
	if uc.gateway == nil {
		return nil, domain.ErrGatewayDisabled
	}
	o, err := uc.openOrder(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	msisdn, err := pos.NormalizeMSISDN(phone)
	if err != nil {
		return nil, fmt.Errorf("%w: teléfono %q", domain.ErrInvalidInput, phone)
	}
	amount := o.TotalPrice.Ceil().IntPart()
	if amount <= 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene monto a cobrar", domain.ErrInvalidInput)
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	res, err := uc.gateway.STKPush(gctx, ports.STKPushRequest{
		OrderID:          o.ID,
		Phone:            msisdn,
		Amount:           amount,
		AccountReference: accountRefLabel + pos.ShortRef(o.ID, accountRefLen),
		Description:      stkDescription,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", o.ID).Msg("mpesa: STK push rechazado")
		return nil, err
	}
	if err := uc.orders.SetCheckoutRequest(ctx, orgID, o.ID, res.CheckoutRequestID); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("checkout_request_id", res.CheckoutRequestID).
		Int64("amount", amount).Msg("mpesa: STK push enviado")
	return &dto.MobileMoneyResponse{
		Message:           MsgSTKPushSent,
		CheckoutRequestID: res.CheckoutRequestID,
		CustomerMessage:   res.CustomerMessage,
	}, nil
}

// HandleCallback procesa el resultado del STK push. Devuelve CallbackIgnored si el cuerpo
// no trae resultado o no corresponde al pedido; los reintentos sobre un pedido pagado son ok.
func (uc *PaymentUseCase) HandleCallback(ctx context.Context, orderID, token string, body []byte) (*dto.CallbackResponse, error) {
	if uc.cfg.CallbackToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(uc.cfg.CallbackToken)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	cb, err := uc.parser.ParseCallback(body)
	if err != nil {
		return nil, fmt.Errorf("%w: callback: %v", domain.ErrInvalidInput, err)
	}
	if cb == nil {
		return &dto.CallbackResponse{Status: CallbackIgnored}, nil
	}
	log := uc.log.With().Str("order_id", orderID).Str("checkout_request_id", cb.CheckoutRequestID).Logger()

	if cb.ResultCode != 0 {
		log.Warn().Int("result_code", cb.ResultCode).Str("result_desc", cb.ResultDesc).Msg("mpesa: pago fallido")
		return &dto.CallbackResponse{Status: CallbackOK}, nil
	}
	if orderID == "" {
		log.Warn().Msg("mpesa: callback exitoso sin orderId")
		return &dto.CallbackResponse{Status: CallbackIgnored}, nil
	}
	if _, err := uuid.Parse(orderID); err != nil {
		log.Warn().Msg("mpesa: callback con orderId mal formado")
		return &dto.CallbackResponse{Status: CallbackIgnored}, nil
	}

	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		log.Warn().Msg("mpesa: callback para pedido inexistente")
		return &dto.CallbackResponse{Status: CallbackIgnored}, nil
	}
	if o.Status == entity.OrderStatusPaid {
		return &dto.CallbackResponse{Status: CallbackOK}, nil
	}
	if o.CheckoutRequestID != "" && cb.CheckoutRequestID != "" && o.CheckoutRequestID != cb.CheckoutRequestID {
		log.Warn().Str("expected", o.CheckoutRequestID).Msg("mpesa: checkout_request_id no coincide")
		return &dto.CallbackResponse{Status: CallbackIgnored}, nil
	}

	s, _ := pos.Settle(o.TotalPrice, entity.PaymentMPesa, decimal.Zero)
	if err := uc.markPaid(ctx, o, s, cb.ReceiptNumber()); err != nil {
		if errors.Is(err, domain.ErrOrderClosed) {
			return &dto.CallbackResponse{Status: CallbackOK}, nil
		}
		return nil, err
	}
	log.Info().Str("receipt", cb.ReceiptNumber()).Msg("mpesa: pago confirmado")
	return &dto.CallbackResponse{Status: CallbackOK}, nil
}

// Receipt genera el PDF del recibo de un pedido pagado.
func (uc *PaymentUseCase) Receipt(ctx context.Context, orgID, orderID string) ([]byte, error) {
	o, err := uc.orders.GetByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.Status != entity.OrderStatusPaid {
		return nil, fmt.Errorf("%w: el pedido aún no está pagado", domain.ErrConflict)
	}
	org, err := uc.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.Receipt(org, o)
}

func (uc *PaymentUseCase) openOrder(ctx context.Context, orgID, orderID string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.Status == entity.OrderStatusPaid {
		return nil, domain.ErrOrderClosed
	}
	return o, nil
}

func (uc *PaymentUseCase) markPaid(ctx context.Context, o *entity.Order, s pos.Settlement, transactionID string) error {
	now := time.Now()
	o.Status = entity.OrderStatusPaid
	o.PaymentMethod = s.Method
	o.AmountTendered = s.AmountTendered
	o.ChangeDue = s.ChangeDue
	o.TransactionID = transactionID
	o.PaidAt = &now
	o.UpdatedAt = now
	if err := uc.orders.MarkPaid(ctx, o); err != nil {
		return err
	}
	uc.recordSale(ctx, o)
	return nil
}

// recordSale descuenta el stock vendido: un asiento por ítem, cada uno en su transacción.
// Un fallo no revierte el cobro; queda en el log para corregir con un ajuste.
func (uc *PaymentUseCase) recordSale(ctx context.Context, o *entity.Order) {
	note := "Sale: Order " + pos.ShortRef(o.ID, saleNoteRefLen)
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			continue
		}
		item := it
		err := uc.stockTx.RunStock(ctx, func(items repository.MenuItemRepository, stock repository.StockRepository) error {
			if err := stock.AddTransaction(ctx, &entity.StockTransaction{
				ID:         uuid.New().String(),
				OrgID:      o.OrgID,
				MenuItemID: item.MenuItemID,
				Quantity:   -item.Quantity,
				Type:       entity.StockTxSale,
				Note:       note,
				CreatedAt:  time.Now(),
			}); err != nil {
				return err
			}
			return items.AdjustStock(ctx, o.OrgID, item.MenuItemID, -item.Quantity)
		})
		if err != nil {
			uc.log.Error().Err(err).Str("order_id", o.ID).Str("menu_item_id", item.MenuItemID).
				Msg("no se pudo registrar la venta en el ledger de stock")
		}
	}
}
