package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/domain/entity"
)

func paidOrder() *entity.Order {
	paid := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &entity.Order{
		ID:          "8f14e45f-ceea-4a7b-9c2d-000000000001",
		TableNumber: "T1",
		Items: []entity.OrderItem{
			{MenuItemID: "m1", Name: "Tusker", Price: decimal.NewFromInt(300), Quantity: 2},
			{MenuItemID: "m2", Name: "Nyama Choma", Price: decimal.NewFromInt(900), Quantity: 1, IsKitchenItem: true},
		},
		TotalPrice:     decimal.NewFromInt(1500),
		Status:         entity.OrderStatusPaid,
		PaymentMethod:  entity.PaymentCash,
		AmountTendered: decimal.NewFromInt(2000),
		ChangeDue:      decimal.NewFromInt(500),
		CreatedAt:      paid.Add(-time.Hour),
		PaidAt:         &paid,
	}
}

func TestReceipt_GeneraPDF(t *testing.T) {
	org := &entity.Organization{ID: "org-1", Name: "Mama Oliech", Address: "Marcus Garvey Rd", Phone: "0722000000"}

	doc, err := NewReceiptGenerator().Receipt(org, paidOrder())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestReceipt_MPesaSinMesa(t *testing.T) {
	o := paidOrder()
	o.TableNumber = ""
	o.PaymentMethod = entity.PaymentMPesa
	o.TransactionID = "SFA7K2L9QX"

	doc, err := NewReceiptGenerator().Receipt(&entity.Organization{Name: "Stasha"}, o)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestReceipt_SinDatos(t *testing.T) {
	_, err := NewReceiptGenerator().Receipt(nil, paidOrder())
	assert.Error(t, err)
}
