package dto

import "github.com/shopspring/decimal"

// TopItemDTO artículo del ranking de más vendidos (por unidades).
type TopItemDTO struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DailySalesPointDTO punto de la tendencia diaria de ventas.
type DailySalesPointDTO struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DashboardSummaryDTO respuesta de GET /api/shops/:shopId/dashboard.
// Todos los sub-agregados son lecturas independientes; se consultan en paralelo.
type DashboardSummaryDTO struct {
	// Inventario
	InventoryValue    decimal.Decimal `json:"inventory_value"`    // Σ stock * precio de venta (activos)
	ItemCount         int             `json:"item_count"`
	LowStockCount     int             `json:"low_stock_count"`
	LowStockItems     []ItemResponse  `json:"low_stock_items"`    // hasta 10
	InventoryMargin   decimal.Decimal `json:"inventory_margin"`   // % sobre valor retail del inventario actual
	InventoryTurnover decimal.Decimal `json:"inventory_turnover"` // unidades vendidas mes / stock promedio

	// Ventas
	TodaySales        decimal.Decimal      `json:"today_sales"`
	TodaySaleCount    int                  `json:"today_sale_count"`
	TodayProfit       decimal.Decimal      `json:"today_profit"`
	MonthSales        decimal.Decimal      `json:"month_sales"` // mes calendario en curso
	YearSales         decimal.Decimal      `json:"year_sales"`  // año calendario en curso
	AverageOrderValue decimal.Decimal      `json:"average_order_value"` // mes móvil
	MonthOrderCount   int                  `json:"month_order_count"`   // mes móvil
	TopSellers        []TopItemDTO         `json:"top_sellers"`         // top 5, 7 días móviles
	RecentSales       []SaleResponse       `json:"recent_sales"`        // 5 más recientes
	SalesTrend        []DailySalesPointDTO `json:"sales_trend"`         // 7 días, ascendente
}
