package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// DailySalesPoint punto de la tendencia diaria de ventas.
type DailySalesPoint struct {
	Date  string // YYYY-MM-DD
	Total decimal.Decimal
	Count int
}

// TopItemResult resultado crudo del ranking de artículos más vendidos.
type TopItemResult struct {
	ItemID       string
	Name         string
	SKU          string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// InventorySnapshot valores agregados del inventario activo de una tienda.
type InventorySnapshot struct {
	RetailValue  decimal.Decimal // Σ stock_quantity * selling_price
	CostValue    decimal.Decimal // Σ stock_quantity * purchase_price
	AverageStock decimal.Decimal // AVG(stock_quantity)
	ItemCount    int
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetSalesTotals devuelve suma y conteo de ventas del período.
	// Usa COALESCE para devolver cero si no hay ventas.
	GetSalesTotals(ctx context.Context, shopID string, start, end time.Time) (total decimal.Decimal, count int, err error)

	// GetProfitInPeriod devuelve Σ(unit_price - purchase_price)*quantity
	// de las líneas del período, menos los descuentos de esas ventas.
	GetProfitInPeriod(ctx context.Context, shopID string, start, end time.Time) (decimal.Decimal, error)

	// GetInventorySnapshot devuelve los valores agregados del inventario activo.
	GetInventorySnapshot(ctx context.Context, shopID string) (*InventorySnapshot, error)

	// GetLowStockCount cuenta artículos activos con stock_quantity <= min_stock_level.
	GetLowStockCount(ctx context.Context, shopID string) (int, error)

	// GetLowStockItems devuelve hasta limit artículos en stock bajo, los más críticos primero.
	GetLowStockItems(ctx context.Context, shopID string, limit int) ([]*entity.Item, error)

	// GetTopSellingItems devuelve los limit artículos con más unidades vendidas en el período.
	GetTopSellingItems(ctx context.Context, shopID string, start, end time.Time, limit int) ([]TopItemResult, error)

	// GetUnitsSold devuelve las unidades vendidas en el período.
	GetUnitsSold(ctx context.Context, shopID string, start, end time.Time) (int64, error)

	// GetDailySalesTrend agrupa ventas por día calendario, ascendente por fecha.
	GetDailySalesTrend(ctx context.Context, shopID string, start, end time.Time) ([]DailySalesPoint, error)
}
