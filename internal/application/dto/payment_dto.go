package dto

import "github.com/shopspring/decimal"

// PayRequest cobro de un pedido. Force confirma el cobro de un pedido aún no listo.
type PayRequest struct {
	PaymentMethod  string          `json:"payment_method" validate:"required,oneof=Cash M-Pesa Card"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
	Force          bool            `json:"force"`
}

// MobileMoneyRequest inicio de cobro STK push.
type MobileMoneyRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// MobileMoneyResponse respuesta al iniciar el STK push.
type MobileMoneyResponse struct {
	Message           string `json:"message"`
	CheckoutRequestID string `json:"checkout_request_id"`
	CustomerMessage   string `json:"customer_message,omitempty"`
}

// CallbackResponse respuesta al callback de la pasarela: ok | ignored.
type CallbackResponse struct {
	Status string `json:"status"`
}
