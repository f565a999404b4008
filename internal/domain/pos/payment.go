package pos

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

// Settlement resultado de liquidar el pago de un pedido.
type Settlement struct {
	Method         string
	AmountTendered decimal.Decimal
	ChangeDue      decimal.Decimal
}

// Settle calcula monto recibido y cambio. Sólo el efectivo usa el tender del cliente;
// M-Pesa y tarjeta cobran exactamente el total.
func Settle(total decimal.Decimal, method string, tendered decimal.Decimal) (Settlement, error) {
	switch method {
	case entity.PaymentCash:
		if tendered.LessThan(total) {
			return Settlement{}, domain.ErrInsufficientTender
		}
		return Settlement{Method: method, AmountTendered: tendered, ChangeDue: tendered.Sub(total)}, nil
	case entity.PaymentMPesa, entity.PaymentCard:
		return Settlement{Method: method, AmountTendered: total, ChangeDue: decimal.Zero}, nil
	default:
		return Settlement{}, domain.ErrInvalidInput
	}
}

// ShortRef recorta un id para notas y referencias visibles.
func ShortRef(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// NormalizeMSISDN lleva un teléfono keniano a 2547XXXXXXXX / 2541XXXXXXXX.
// Acepta 07.., 01.., +254.., 254.. con espacios o guiones.
func NormalizeMSISDN(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case strings.HasPrefix(digits, "254") && len(digits) == 12:
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		digits = "254" + digits[1:]
	case len(digits) == 9 && (digits[0] == '7' || digits[0] == '1'):
		digits = "254" + digits
	default:
		return "", domain.ErrInvalidInput
	}
	if digits[3] != '7' && digits[3] != '1' {
		return "", domain.ErrInvalidInput
	}
	return digits, nil
}
