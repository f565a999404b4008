// Package mpesa implementa la pasarela de pago móvil sobre la API Daraja de Safaricom.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
)

var _ ports.MobileMoneyGateway = (*Client)(nil)

const (
	oauthPath   = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"

	// CallbackPath ruta pública donde Daraja entrega el resultado.
	CallbackPath = "/api/mpesa/callback"

	timestampLayout = "20060102150405"
	tokenSkew       = time.Minute
	maxBody         = 64 * 1024
)

// Config credenciales y URLs del cliente.
type Config struct {
	BaseURL         string // https://sandbox.safaricom.co.ke | https://api.safaricom.co.ke
	ConsumerKey     string
	ConsumerSecret  string
	ShortCode       string
	PassKey         string
	TransactionType string // CustomerPayBillOnline | CustomerBuyGoodsOnline
	CallbackBaseURL string // URL pública del API, sin barra final
	CallbackToken   string // se agrega como ?token= al callback
}

// Client adaptador Daraja. Cachea el token OAuth hasta poco antes de su expiración.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient construye el cliente con timeout de red propio; el caso de uso agrega
// además un context.WithTimeout por llamada.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.TransactionType == "" {
		cfg.TransactionType = "CustomerPayBillOnline"
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 25 * time.Second},
		log:        log,
		now:        time.Now,
	}
}

// ── Protocolo Daraja ─────────────────────────────────────────────────────────

type oauthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	RequestID           string `json:"requestId"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// STKPush solicita al teléfono del cliente que autorice el pago.
func (c *Client) STKPush(ctx context.Context, in ports.STKPushRequest) (*ports.STKPushResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	ts := c.now().In(pos.BusinessZone).Format(timestampLayout)
	payload := stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          Password(c.cfg.ShortCode, c.cfg.PassKey, ts),
		Timestamp:         ts,
		TransactionType:   c.cfg.TransactionType,
		Amount:            in.Amount,
		PartyA:            in.Phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       in.Phone,
		CallBackURL:       c.CallbackURL(in.OrderID),
		AccountReference:  in.AccountReference,
		TransactionDesc:   in.Description,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("mpesa: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+stkPushPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mpesa: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	raw, status, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.invalidate()
	}

	var resp stkPushResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrPaymentGateway, status, string(raw))
	}
	if resp.ResponseCode != "0" {
		msg := resp.ErrorMessage
		if msg == "" {
			msg = resp.ResponseDescription
		}
		if msg == "" {
			msg = "Failed to initiate payment."
		}
		c.log.Warn().Int("status", status).Str("error_code", resp.ErrorCode).Str("order_id", in.OrderID).Msg("mpesa: STK push rechazado")
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentGateway, msg)
	}
	return &ports.STKPushResult{
		CheckoutRequestID:   resp.CheckoutRequestID,
		MerchantRequestID:   resp.MerchantRequestID,
		CustomerMessage:     resp.CustomerMessage,
		ResponseDescription: resp.ResponseDescription,
	}, nil
}

// CallbackURL URL a la que Daraja enviará el resultado del pedido.
func (c *Client) CallbackURL(orderID string) string {
	q := url.Values{}
	q.Set("orderId", orderID)
	if c.cfg.CallbackToken != "" {
		q.Set("token", c.cfg.CallbackToken)
	}
	return c.cfg.CallbackBaseURL + CallbackPath + "?" + q.Encode()
}

// Password base64(shortcode + passkey + timestamp).
func Password(shortCode, passKey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passKey + timestamp))
}

// accessToken devuelve el token cacheado o pide uno nuevo con client_credentials.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+oauthPath, nil)
	if err != nil {
		return "", fmt.Errorf("mpesa: crear request OAuth: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	raw, status, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: OAuth HTTP %d: %s", domain.ErrPaymentGateway, status, string(raw))
	}
	var resp oauthResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.AccessToken == "" {
		return "", fmt.Errorf("%w: respuesta OAuth inválida", domain.ErrPaymentGateway)
	}

	ttl := time.Hour
	if secs, err := strconv.Atoi(resp.ExpiresIn); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}
	c.token = resp.AccessToken
	c.expiresAt = c.now().Add(ttl - tokenSkew)
	return c.token, nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("mpesa: timeout o cancelación: %w", ctx.Err())
		}
		return nil, 0, fmt.Errorf("mpesa: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, 0, fmt.Errorf("mpesa: leer respuesta: %w", err)
	}
	return raw, resp.StatusCode, nil
}
