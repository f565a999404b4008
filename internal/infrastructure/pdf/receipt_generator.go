// Package pdf genera el recibo imprimible de un pedido pagado.
//
// Layout (rollo de 80 mm):
//
//	┌──────────────────────────────┐
//	│  Nombre del local            │
//	│  Dirección / Tel             │
//	│  ──────────────────────────  │
//	│  Mesa | Pedido | Fecha       │
//	│  Cant  Producto    Subtotal  │
//	│  ──────────────────────────  │
//	│  TOTAL / Pago / Cambio       │
//	│  QR con la referencia        │
//	│  Pie de recibo               │
//	└──────────────────────────────┘
package pdf

import (
	"errors"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stasha-pos/internal/application/ports"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/pkg/currency"
)

// Dimensiones del rollo en mm. El alto crece con las líneas del pedido.
const (
	paperWidth  = 80.0
	baseHeight  = 150.0
	heightPerLn = 6.0
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Receipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) Receipt(org *entity.Organization, order *entity.Order) ([]byte, error) {
	if org == nil || order == nil {
		return nil, errors.New("pdf: organización y pedido son obligatorios")
	}

	cfg := config.NewBuilder().
		WithDimensions(paperWidth, baseHeight+heightPerLn*float64(len(order.Items))).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Receipt "+pos.ShortRef(order.ID, 8), true).
		WithAuthor(org.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(org)...)
	m.AddRows(line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(orderInfoRow(order))
	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(order.Items)...)
	m.AddRows(line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalsRows(order)...)
	m.AddRows(footerRows(org, order)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(org *entity.Organization) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(org.Name, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary,
		}))),
	}
	if org.Address != "" {
		rows = append(rows, centered(org.Address, 4))
	}
	if org.Phone != "" {
		rows = append(rows, centered("Tel: "+org.Phone, 4))
	}
	return rows
}

func orderInfoRow(order *entity.Order) core.Row {
	when := order.CreatedAt
	if order.PaidAt != nil {
		when = *order.PaidAt
	}
	table := pos.TableDisplayName(order.TableNumber, 0)
	if table == "Table 0" {
		table = "-"
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Table: "+table, props.Text{Size: 8}),
			text.New("Order: "+pos.ShortRef(order.ID, 8), props.Text{Size: 8, Top: 4}),
		),
		col.New(6).Add(
			text.New(when.In(pos.BusinessZone).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a}))
	}
	return row.New(6).Add(
		h("Qty", 2, align.Left),
		h("Item", 6, align.Left),
		h("Amount", 4, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(heightPerLn).Add(
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8})),
			col.New(6).Add(text.New(it.Name, props.Text{Size: 8})),
			col.New(4).Add(text.New(currency.Format(it.Subtotal()), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return result
}

func totalsRows(order *entity.Order) []core.Row {
	rows := []core.Row{
		labelValue("TOTAL", currency.FormatKES(order.TotalPrice), true),
	}
	if order.PaymentMethod != "" {
		rows = append(rows, labelValue("Paid by", order.PaymentMethod, false))
	}
	if order.PaymentMethod == entity.PaymentCash && order.AmountTendered.IsPositive() {
		rows = append(rows,
			labelValue("Tendered", currency.Format(order.AmountTendered), false),
			labelValue("Change", currency.Format(order.ChangeDue), false),
		)
	}
	if order.TransactionID != "" {
		rows = append(rows, labelValue("Ref", order.TransactionID, false))
	}
	return rows
}

func footerRows(org *entity.Organization, order *entity.Order) []core.Row {
	ref := order.TransactionID
	if ref == "" {
		ref = order.ID
	}
	return []core.Row{
		row.New(3),
		row.New(28).Add(
			col.New(3),
			col.New(6).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
			col.New(3),
		),
		centered(org.Footer(), 6),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func centered(s string, height float64) core.Row {
	return row.New(height).Add(col.New(12).Add(text.New(s, props.Text{
		Size: 8, Align: align.Center, Color: colorGray,
	})))
}

func labelValue(label, value string, bold bool) core.Row {
	style := fontstyle.Normal
	size := 8.0
	if bold {
		style = fontstyle.Bold
		size = 10
	}
	return row.New(6).Add(
		col.New(6).Add(text.New(label, props.Text{Style: style, Size: size})),
		col.New(6).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right})),
	)
}
