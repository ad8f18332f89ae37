package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

const (
	dashboardTopSellers    = 5
	dashboardRecentSales   = 5
	dashboardLowStockItems = 10
	dashboardTrendDays     = 7
)

// DashboardUseCase compone el resumen operativo de una tienda.
//
// Todos los sub-agregados son consultas read-only sin dependencias entre sí;
// se lanzan en paralelo (fan-out/fan-in) solo por latencia, no por corrección.
type DashboardUseCase struct {
	shopRepo      repository.ShopRepository
	saleRepo      repository.SaleRepository
	analyticsRepo repository.AnalyticsRepository
	cache         ReportCache // opcional, nil = sin caché
	cacheTTL      time.Duration
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(shopRepo repository.ShopRepository, saleRepo repository.SaleRepository, analyticsRepo repository.AnalyticsRepository, cache ReportCache, cacheTTL time.Duration, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		shopRepo: shopRepo, saleRepo: saleRepo, analyticsRepo: analyticsRepo,
		cache: cache, cacheTTL: cacheTTL, log: log,
	}
}

// GetSummary construye el DashboardSummaryDTO para la tienda indicada.
//
// Cuatro goroutines:
//  1. inventario: snapshot + conteo de stock bajo + detalle de stock bajo
//  2. totales de ventas: hoy, mes calendario, año, mes móvil
//  3. rankings: top vendidos (7 días) + ventas recientes
//  4. tendencias: trend diario (7 días) + unidades vendidas mes móvil + profit de hoy
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID, shopID string) (*dto.DashboardSummaryDTO, error) {
	shop, err := uc.shopRepo.GetByID(shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil || !shop.IsActive {
		return nil, domain.ErrNotFound
	}
	if shop.OwnerID != userID {
		return nil, domain.ErrForbidden
	}

	cacheKey := "report:dashboard:" + shopID
	if uc.cache != nil {
		var cached dto.DashboardSummaryDTO
		found, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", cacheKey).Msg("caché de reportes no disponible")
		} else if found {
			return &cached, nil
		}
	}

	now := time.Now()

	// ── Rangos de fecha ───────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	trailingMonthStart := todayStart.AddDate(0, -1, 0)
	trendStart := todayStart.AddDate(0, 0, -(dashboardTrendDays - 1))
	weekStart := todayStart.AddDate(0, 0, -6)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type inventoryResult struct {
		snapshot      *repository.InventorySnapshot
		lowStockCount int
		lowStockItems []*entity.Item
		err           error
	}
	type totalsResult struct {
		todayTotal, monthTotal, yearTotal, trailingTotal decimal.Decimal
		todayCount, trailingCount                        int
		err                                              error
	}
	type rankingResult struct {
		topSellers  []repository.TopItemResult
		recentSales []*entity.Sale
		err         error
	}
	type trendResult struct {
		trend       []repository.DailySalesPoint
		unitsSold   int64
		todayProfit decimal.Decimal
		err         error
	}

	invCh := make(chan inventoryResult, 1)
	totCh := make(chan totalsResult, 1)
	rankCh := make(chan rankingResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		var r inventoryResult
		r.snapshot, r.err = uc.analyticsRepo.GetInventorySnapshot(ctx, shopID)
		if r.err == nil {
			r.lowStockCount, r.err = uc.analyticsRepo.GetLowStockCount(ctx, shopID)
		}
		if r.err == nil {
			r.lowStockItems, r.err = uc.analyticsRepo.GetLowStockItems(ctx, shopID, dashboardLowStockItems)
		}
		invCh <- r
	}()
	go func() {
		var r totalsResult
		r.todayTotal, r.todayCount, r.err = uc.analyticsRepo.GetSalesTotals(ctx, shopID, todayStart, todayEnd)
		if r.err == nil {
			r.monthTotal, _, r.err = uc.analyticsRepo.GetSalesTotals(ctx, shopID, monthStart, todayEnd)
		}
		if r.err == nil {
			r.yearTotal, _, r.err = uc.analyticsRepo.GetSalesTotals(ctx, shopID, yearStart, todayEnd)
		}
		if r.err == nil {
			r.trailingTotal, r.trailingCount, r.err = uc.analyticsRepo.GetSalesTotals(ctx, shopID, trailingMonthStart, todayEnd)
		}
		totCh <- r
	}()
	go func() {
		var r rankingResult
		r.topSellers, r.err = uc.analyticsRepo.GetTopSellingItems(ctx, shopID, weekStart, todayEnd, dashboardTopSellers)
		if r.err == nil {
			r.recentSales, r.err = uc.saleRepo.ListByShop(shopID, dashboardRecentSales, 0)
		}
		rankCh <- r
	}()
	go func() {
		var r trendResult
		r.trend, r.err = uc.analyticsRepo.GetDailySalesTrend(ctx, shopID, trendStart, todayEnd)
		if r.err == nil {
			r.unitsSold, r.err = uc.analyticsRepo.GetUnitsSold(ctx, shopID, trailingMonthStart, todayEnd)
		}
		if r.err == nil {
			r.todayProfit, r.err = uc.analyticsRepo.GetProfitInPeriod(ctx, shopID, todayStart, todayEnd)
		}
		trendCh <- r
	}()

	inv := <-invCh
	tot := <-totCh
	rank := <-rankCh
	trend := <-trendCh

	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}
	if tot.err != nil {
		return nil, fmt.Errorf("dashboard: totales de ventas: %w", tot.err)
	}
	if rank.err != nil {
		return nil, fmt.Errorf("dashboard: rankings: %w", rank.err)
	}
	if trend.err != nil {
		return nil, fmt.Errorf("dashboard: tendencias: %w", trend.err)
	}

	// ── Derivados ─────────────────────────────────────────────────────────────
	// Margen snapshot del inventario actual (no histórico):
	// (retail - costo) / retail * 100
	inventoryMargin := pct(inv.snapshot.RetailValue.Sub(inv.snapshot.CostValue), inv.snapshot.RetailValue)
	// Rotación: unidades vendidas en el mes móvil / stock promedio
	turnover := safeDiv(decimal.NewFromInt(trend.unitsSold), inv.snapshot.AverageStock)
	avgOrderValue := safeDiv(tot.trailingTotal, decimal.NewFromInt(int64(tot.trailingCount)))

	lowStock := make([]dto.ItemResponse, 0, len(inv.lowStockItems))
	for _, it := range inv.lowStockItems {
		lowStock = append(lowStock, toItemResponse(it))
	}
	topSellers := make([]dto.TopItemDTO, 0, len(rank.topSellers))
	for _, t := range rank.topSellers {
		topSellers = append(topSellers, dto.TopItemDTO{
			ItemID: t.ItemID, Name: t.Name, SKU: t.SKU,
			QuantitySold: t.QuantitySold, Revenue: t.Revenue,
		})
	}
	recent := make([]dto.SaleResponse, 0, len(rank.recentSales))
	for _, s := range rank.recentSales {
		recent = append(recent, toSaleSummary(s))
	}
	salesTrend := make([]dto.DailySalesPointDTO, 0, len(trend.trend))
	for _, p := range trend.trend {
		salesTrend = append(salesTrend, dto.DailySalesPointDTO{Date: p.Date, Total: p.Total, Count: p.Count})
	}

	summary := &dto.DashboardSummaryDTO{
		InventoryValue:    inv.snapshot.RetailValue.Round(2),
		ItemCount:         inv.snapshot.ItemCount,
		LowStockCount:     inv.lowStockCount,
		LowStockItems:     lowStock,
		InventoryMargin:   inventoryMargin,
		InventoryTurnover: turnover,
		TodaySales:        tot.todayTotal.Round(2),
		TodaySaleCount:    tot.todayCount,
		TodayProfit:       trend.todayProfit.Round(2),
		MonthSales:        tot.monthTotal.Round(2),
		YearSales:         tot.yearTotal.Round(2),
		AverageOrderValue: avgOrderValue,
		MonthOrderCount:   tot.trailingCount,
		TopSellers:        topSellers,
		RecentSales:       recent,
		SalesTrend:        salesTrend,
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, summary, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("key", cacheKey).Msg("no se pudo cachear el dashboard")
		}
	}
	return summary, nil
}

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            i.ID,
		ShopID:        i.ShopID,
		Name:          i.Name,
		SKU:           i.SKU,
		Category:      i.Category,
		PurchasePrice: i.PurchasePrice,
		SellingPrice:  i.SellingPrice,
		StockQuantity: i.StockQuantity,
		MinStockLevel: i.MinStockLevel,
		LowStock:      i.IsLowStock(),
		IsActive:      i.IsActive,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toSaleSummary(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, si := range s.Items {
		r := dto.SaleItemResponse{
			ID: si.ID, ItemID: si.ItemID, Quantity: si.Quantity,
			UnitPrice: si.UnitPrice, Subtotal: si.Subtotal,
		}
		if si.Item != nil {
			r.ItemName = si.Item.Name
			r.SKU = si.Item.SKU
			r.Category = si.Item.Category
		}
		items = append(items, r)
	}
	return dto.SaleResponse{
		ID:            s.ID,
		ShopID:        s.ShopID,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
