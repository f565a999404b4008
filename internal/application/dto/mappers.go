package dto

import (
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/pkg/currency"
)

// FromProfile convierte un perfil a su salida pública.
func FromProfile(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		OrgID:     p.OrgID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

// FromOrganization convierte la organización; nil se mantiene nil.
func FromOrganization(o *entity.Organization) *OrganizationResponse {
	if o == nil {
		return nil
	}
	return &OrganizationResponse{
		ID:            o.ID,
		Name:          o.Name,
		Address:       o.Address,
		Phone:         o.Phone,
		ReceiptFooter: o.Footer(),
		PlanID:        o.PlanID,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

// FromCategory convierte una categoría.
func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsKitchen: c.IsKitchen,
		Station:   c.Station(),
		CreatedAt: c.CreatedAt,
	}
}

// FromMenuItem convierte un ítem del menú.
func FromMenuItem(m *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:                m.ID,
		Name:              m.Name,
		Price:             m.Price,
		PriceFormatted:    currency.FormatKES(m.Price),
		CategoryID:        m.CategoryID,
		CategoryName:      m.CategoryName,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		LowStock:          m.IsLowStock(),
		Emoji:             m.Emoji,
		Available:         m.Available,
		IsKitchenItem:     m.IsKitchenItem,
	}
}

// FromMenuItems convierte una lista de ítems.
func FromMenuItems(list []*entity.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMenuItem(m))
	}
	return out
}

// FromOrder convierte un pedido. Los montos de pago sólo se incluyen si está pagado.
func FromOrder(o *entity.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []entity.OrderItem{}
	}
	out := OrderResponse{
		ID:                o.ID,
		TableID:           o.TableID,
		TableNumber:       o.TableNumber,
		Items:             items,
		TotalPrice:        o.TotalPrice,
		TotalFormatted:    currency.FormatKES(o.TotalPrice),
		Status:            o.Status,
		KitchenStatus:     o.KitchenStatus,
		BarStatus:         o.BarStatus,
		PaymentMethod:     o.PaymentMethod,
		TransactionID:     o.TransactionID,
		CheckoutRequestID: o.CheckoutRequestID,
		CreatedAt:         o.CreatedAt,
		PaidAt:            o.PaidAt,
	}
	if o.Status == entity.OrderStatusPaid {
		tendered, change := o.AmountTendered, o.ChangeDue
		out.AmountTendered = &tendered
		out.ChangeDue = &change
	}
	return out
}

// FromPlan convierte un plan.
func FromPlan(p *entity.Plan) PlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		PriceKES:       p.PriceKES,
		PriceFormatted: currency.FormatKES(p.PriceKES),
		Features:       features,
		Highlight:      p.Highlight,
	}
}
