package mpesa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
)

var _ ports.CallbackParser = CallbackParser{}

// CallbackParser decodifica el cuerpo que Daraja envía a CallbackPath.
type CallbackParser struct{}

type callbackEnvelope struct {
	Body struct {
		STKCallback *stkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type stkCallback struct {
	MerchantRequestID string  `json:"MerchantRequestID"`
	CheckoutRequestID string  `json:"CheckoutRequestID"`
	ResultCode        flexInt `json:"ResultCode"`
	ResultDesc        string  `json:"ResultDesc"`
	CallbackMetadata  *struct {
		Item []struct {
			Name  string          `json:"Name"`
			Value json.RawMessage `json:"Value"`
		} `json:"Item"`
	} `json:"CallbackMetadata"`
}

// flexInt acepta ResultCode como número o como string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("ResultCode inválido: %s", string(b))
	}
	*f = flexInt(n)
	return nil
}

// ParseCallback convierte Body.stkCallback a ports.STKCallback. Los ítems de
// CallbackMetadata quedan en un mapa por nombre con su valor como texto.
func (CallbackParser) ParseCallback(body []byte) (*ports.STKCallback, error) {
	var env callbackEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("mpesa: callback JSON inválido: %w", err)
	}
	cb := env.Body.STKCallback
	if cb == nil {
		return nil, nil
	}
	out := &ports.STKCallback{
		MerchantRequestID: cb.MerchantRequestID,
		CheckoutRequestID: cb.CheckoutRequestID,
		ResultCode:        int(cb.ResultCode),
		ResultDesc:        cb.ResultDesc,
		Metadata:          map[string]string{},
	}
	if cb.CallbackMetadata == nil {
		return out, nil
	}
	for _, it := range cb.CallbackMetadata.Item {
		if len(it.Value) == 0 || string(it.Value) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(it.Value, &s); err == nil {
			out.Metadata[it.Name] = s
			continue
		}
		out.Metadata[it.Name] = string(it.Value)
	}
	return out, nil
}
