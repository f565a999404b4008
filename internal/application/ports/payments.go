package ports

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// STKPushRequest solicitud de cobro por dinero móvil al teléfono del cliente.
type STKPushRequest struct {
	OrderID          string
	Phone            string // 2547XXXXXXXX
	Amount           int64  // KES enteros
	AccountReference string
	Description      string
}

// STKPushResult respuesta aceptada por la pasarela.
type STKPushResult struct {
	CheckoutRequestID   string
	MerchantRequestID   string
	CustomerMessage     string
	ResponseDescription string
}

// MobileMoneyGateway puerto de salida hacia la pasarela de pago móvil (M-Pesa Daraja).
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type MobileMoneyGateway interface {
	STKPush(ctx context.Context, req STKPushRequest) (*STKPushResult, error)
}

// ReceiptGenerator genera el recibo imprimible de un pedido pagado.
type ReceiptGenerator interface {
	Receipt(org *entity.Organization, order *entity.Order) ([]byte, error)
}

// STKCallback resultado asíncrono del STK push enviado por la pasarela.
type STKCallback struct {
	MerchantRequestID string
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	Metadata          map[string]string // CallbackMetadata.Item[] por nombre
}

// ReceiptNumber código de la transacción (MpesaReceiptNumber).
func (c *STKCallback) ReceiptNumber() string {
	return c.Metadata["MpesaReceiptNumber"]
}

// CallbackParser decodifica el cuerpo del callback. Devuelve nil, nil si el cuerpo no
// trae resultado de STK push.
type CallbackParser interface {
	ParseCallback(body []byte) (*STKCallback, error)
}
