package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	TodaySales     decimal.Decimal    `json:"today_sales"`
	TodayOrders    int                `json:"today_orders"`
	MonthlySales   decimal.Decimal    `json:"monthly_sales"`
	MonthlyOrders  int                `json:"monthly_orders"`
	ActiveOrders   int                `json:"active_orders"`
	ReadyOrders    int                `json:"ready_orders"`
	TableCount     int                `json:"table_count"`
	OccupiedTables int                `json:"occupied_tables"`
	MenuItemCount  int                `json:"menu_item_count"`
	LowStockItems  []MenuItemResponse `json:"low_stock_items"`
	StaffCount     int                `json:"staff_count"`
	DateLabel      string             `json:"date_label"` // ej: "October 2026"
}
