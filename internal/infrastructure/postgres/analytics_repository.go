package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
// Trabaja directo sobre el pool: nunca participa en transacciones.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesTotals suma y conteo de ventas del período.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, shopID string, start, end time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales WHERE shop_id = $1 AND created_at BETWEEN $2 AND $3`
	var total decimal.Decimal
	var count int
	if err := r.pool.QueryRow(ctx, query, shopID, start, end).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// GetProfitInPeriod ganancia del período: margen por línea menos descuentos.
func (r *AnalyticsRepo) GetProfitInPeriod(ctx context.Context, shopID string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(line_profit), 0) - COALESCE(SUM(discount), 0) FROM (
			SELECT s.discount,
				(SELECT COALESCE(SUM((si.unit_price - i.purchase_price) * si.quantity), 0)
				 FROM sale_items si JOIN items i ON i.id = si.item_id
				 WHERE si.sale_id = s.id) AS line_profit
			FROM sales s
			WHERE s.shop_id = $1 AND s.created_at BETWEEN $2 AND $3
		) t`
	var profit decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, shopID, start, end).Scan(&profit); err != nil {
		return decimal.Zero, fmt.Errorf("profit in period: %w", err)
	}
	return profit, nil
}

// GetInventorySnapshot valores agregados del inventario activo.
func (r *AnalyticsRepo) GetInventorySnapshot(ctx context.Context, shopID string) (*repository.InventorySnapshot, error) {
	query := `
		SELECT COALESCE(SUM(stock_quantity * selling_price), 0),
			COALESCE(SUM(stock_quantity * purchase_price), 0),
			COALESCE(AVG(stock_quantity), 0),
			COUNT(*)
		FROM items WHERE shop_id = $1 AND is_active = TRUE`
	var snap repository.InventorySnapshot
	err := r.pool.QueryRow(ctx, query, shopID).Scan(
		&snap.RetailValue, &snap.CostValue, &snap.AverageStock, &snap.ItemCount,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	return &snap, nil
}

// GetLowStockCount cuenta artículos activos en o por debajo del mínimo.
func (r *AnalyticsRepo) GetLowStockCount(ctx context.Context, shopID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM items
		WHERE shop_id = $1 AND is_active = TRUE AND stock_quantity <= min_stock_level`
	var count int
	if err := r.pool.QueryRow(ctx, query, shopID).Scan(&count); err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// GetLowStockItems artículos en stock bajo, los más críticos primero.
func (r *AnalyticsRepo) GetLowStockItems(ctx context.Context, shopID string, limit int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE shop_id = $1 AND is_active = TRUE AND stock_quantity <= min_stock_level
		ORDER BY stock_quantity ASC, name ASC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, shopID, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetTopSellingItems ranking por unidades vendidas en el período.
func (r *AnalyticsRepo) GetTopSellingItems(ctx context.Context, shopID string, start, end time.Time, limit int) ([]repository.TopItemResult, error) {
	query := `
		SELECT i.id, i.name, i.sku,
			COALESCE(SUM(si.quantity), 0), COALESCE(SUM(si.subtotal), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN items i ON i.id = si.item_id
		WHERE s.shop_id = $1 AND s.created_at BETWEEN $2 AND $3
		GROUP BY i.id, i.name, i.sku
		ORDER BY SUM(si.quantity) DESC, i.name ASC
		LIMIT $4`
	rows, err := r.pool.Query(ctx, query, shopID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling items: %w", err)
	}
	defer rows.Close()
	var list []repository.TopItemResult
	for rows.Next() {
		var t repository.TopItemResult
		if err := rows.Scan(&t.ItemID, &t.Name, &t.SKU, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetUnitsSold unidades vendidas en el período.
func (r *AnalyticsRepo) GetUnitsSold(ctx context.Context, shopID string, start, end time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity), 0)
		FROM sale_items si JOIN sales s ON s.id = si.sale_id
		WHERE s.shop_id = $1 AND s.created_at BETWEEN $2 AND $3`
	var units int64
	if err := r.pool.QueryRow(ctx, query, shopID, start, end).Scan(&units); err != nil {
		return 0, fmt.Errorf("units sold: %w", err)
	}
	return units, nil
}

// GetDailySalesTrend ventas agrupadas por día calendario, ascendente.
func (r *AnalyticsRepo) GetDailySalesTrend(ctx context.Context, shopID string, start, end time.Time) ([]repository.DailySalesPoint, error) {
	query := `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'), COALESCE(SUM(total), 0), COUNT(*)
		FROM sales WHERE shop_id = $1 AND created_at BETWEEN $2 AND $3
		GROUP BY created_at::date
		ORDER BY created_at::date ASC`
	rows, err := r.pool.Query(ctx, query, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily sales trend: %w", err)
	}
	defer rows.Close()
	var points []repository.DailySalesPoint
	for rows.Next() {
		var p repository.DailySalesPoint
		if err := rows.Scan(&p.Date, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
