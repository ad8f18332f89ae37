package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodDTO rango de fechas resuelto desde el token de timeframe.
type PeriodDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ProfitSummaryDTO totales del período.
type ProfitSummaryDTO struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	TotalItems         int             `json:"total_items"` // unidades vendidas
	SaleCount          int             `json:"sale_count"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`        // % (0 si revenue es 0)
	CostRatio          decimal.Decimal `json:"cost_ratio"`           // % (0 si revenue es 0)
	AverageOrderProfit decimal.Decimal `json:"average_order_profit"` // 0 si no hay ventas
}

// CategoryProfitDTO bucket de rentabilidad por categoría.
type CategoryProfitDTO struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Cost     decimal.Decimal `json:"cost"`
	Profit   decimal.Decimal `json:"profit"`
	Items    int             `json:"items"`
	Margin   decimal.Decimal `json:"margin"` // % (0 si revenue es 0)
}

// ItemProfitDTO bucket de rentabilidad por artículo, acumulado entre ventas.
type ItemProfitDTO struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	QuantitySold int             `json:"quantity_sold"`
}

// DailyProfitDTO bucket por día calendario (YYYY-MM-DD), ascendente.
type DailyProfitDTO struct {
	Date         string          `json:"date"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
}

// HourlyProfitDTO bucket por hora del día (0–23, siempre 24 slots).
type HourlyProfitDTO struct {
	Hour         int             `json:"hour"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
}

// ProfitTrendsDTO tendencias del período. PeakHour es nil si no hubo ventas.
type ProfitTrendsDTO struct {
	Daily    []DailyProfitDTO  `json:"daily"`
	Hourly   []HourlyProfitDTO `json:"hourly"`
	PeakHour *HourlyProfitDTO  `json:"peak_hour"`
}

// ProfitBreakdownDTO top 10 por profit descendente.
type ProfitBreakdownDTO struct {
	Categories []CategoryProfitDTO `json:"categories"`
	Items      []ItemProfitDTO     `json:"items"`
}

// RecentSaleDTO venta reciente anotada con su propia rentabilidad.
type RecentSaleDTO struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       decimal.Decimal `json:"margin"` // % sobre el total de la venta
	CreatedAt    time.Time       `json:"created_at"`
}

// ProfitReportDTO respuesta de GET /api/shops/:shopId/analytics/profit.
type ProfitReportDTO struct {
	Timeframe   string             `json:"timeframe"`
	Period      PeriodDTO          `json:"period"`
	Summary     ProfitSummaryDTO   `json:"summary"`
	Trends      ProfitTrendsDTO    `json:"trends"`
	Breakdown   ProfitBreakdownDTO `json:"breakdown"`
	RecentSales []RecentSaleDTO    `json:"recent_sales"`
}
