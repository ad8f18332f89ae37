// Package analytics contiene los casos de uso de reportes de rentabilidad
// y el resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

const (
	topCategories   = 10
	topItems        = 10
	recentSaleCount = 10
)

// ProfitUseCase calcula el reporte de rentabilidad de una tienda para un
// timeframe dado. La agregación es fetch-then-reduce: trae las ventas del
// período con líneas y artículos, y reduce en memoria.
//
// El costo usa el purchase_price ACTUAL del artículo: el sistema no versiona
// el precio de compra, así que la rentabilidad histórica se calcula contra
// el costo vigente.
type ProfitUseCase struct {
	shopRepo repository.ShopRepository
	saleRepo repository.SaleRepository
	cache    ReportCache // opcional, nil = sin caché
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewProfitUseCase construye el caso de uso. cache puede ser nil.
func NewProfitUseCase(shopRepo repository.ShopRepository, saleRepo repository.SaleRepository, cache ReportCache, cacheTTL time.Duration, log *logger.Logger) *ProfitUseCase {
	return &ProfitUseCase{shopRepo: shopRepo, saleRepo: saleRepo, cache: cache, cacheTTL: cacheTTL, log: log}
}

// GetReport resuelve el timeframe, verifica propiedad y arma el reporte.
func (uc *ProfitUseCase) GetReport(ctx context.Context, userID, shopID, timeframe string) (*dto.ProfitReportDTO, error) {
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

	start, end, normalized := ResolveTimeframe(timeframe, time.Now())

	cacheKey := fmt.Sprintf("report:profit:%s:%s", shopID, normalized)
	if uc.cache != nil {
		var cached dto.ProfitReportDTO
		found, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", cacheKey).Msg("caché de reportes no disponible")
		} else if found {
			return &cached, nil
		}
	}

	sales, err := uc.saleRepo.ListByShopAndPeriod(shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de rentabilidad: %w", err)
	}

	report := buildProfitReport(normalized, start, end, sales)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, report, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("key", cacheKey).Msg("no se pudo cachear el reporte")
		}
	}
	return report, nil
}

// buildProfitReport reduce las ventas del período a los buckets del reporte.
// sales viene ordenado descendente por fecha de creación.
//
// Ventas sin líneas (datos históricos sin detalle) aportan su total solo al
// revenue global; su costo y profit se tratan como desconocidos (cero),
// nunca se estiman.
func buildProfitReport(timeframe string, start, end time.Time, sales []*entity.Sale) *dto.ProfitReportDTO {
	var (
		totalRevenue = decimal.Zero
		totalCost    = decimal.Zero
		totalProfit  = decimal.Zero
		totalItems   = 0

		byCategory = map[string]*dto.CategoryProfitDTO{}
		byItem     = map[string]*dto.ItemProfitDTO{}
		byDay      = map[string]*dto.DailyProfitDTO{}
	)
	hourly := make([]dto.HourlyProfitDTO, 24)
	for h := range hourly {
		hourly[h] = dto.HourlyProfitDTO{
			Hour: h, Revenue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero,
		}
	}

	for _, sale := range sales {
		if len(sale.Items) == 0 {
			totalRevenue = totalRevenue.Add(sale.Total)
			continue
		}

		saleRevenue := decimal.Zero
		saleCost := decimal.Zero
		for _, line := range sale.Items {
			qty := decimal.NewFromInt(int64(line.Quantity))
			lineRevenue := line.UnitPrice.Mul(qty)
			lineCost := decimal.Zero
			if line.Item != nil {
				lineCost = line.Item.PurchasePrice.Mul(qty)
			}
			lineProfit := lineRevenue.Sub(lineCost)

			saleRevenue = saleRevenue.Add(lineRevenue)
			saleCost = saleCost.Add(lineCost)
			totalItems += line.Quantity

			category, itemID, itemName := "sin categoría", line.ItemID, ""
			if line.Item != nil {
				if line.Item.Category != "" {
					category = line.Item.Category
				}
				itemName = line.Item.Name
			}

			cat := byCategory[category]
			if cat == nil {
				cat = &dto.CategoryProfitDTO{Category: category, Revenue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
				byCategory[category] = cat
			}
			cat.Revenue = cat.Revenue.Add(lineRevenue)
			cat.Cost = cat.Cost.Add(lineCost)
			cat.Profit = cat.Profit.Add(lineProfit)
			cat.Items += line.Quantity

			it := byItem[itemID]
			if it == nil {
				it = &dto.ItemProfitDTO{ItemID: itemID, Name: itemName, Revenue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
				byItem[itemID] = it
			}
			it.Revenue = it.Revenue.Add(lineRevenue)
			it.Cost = it.Cost.Add(lineCost)
			it.Profit = it.Profit.Add(lineProfit)
			it.QuantitySold += line.Quantity
		}
		saleProfit := saleRevenue.Sub(saleCost)

		totalRevenue = totalRevenue.Add(saleRevenue)
		totalCost = totalCost.Add(saleCost)
		totalProfit = totalProfit.Add(saleProfit)

		day := sale.CreatedAt.Format("2006-01-02")
		d := byDay[day]
		if d == nil {
			d = &dto.DailyProfitDTO{Date: day, Revenue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
			byDay[day] = d
		}
		d.Revenue = d.Revenue.Add(saleRevenue)
		d.Cost = d.Cost.Add(saleCost)
		d.Profit = d.Profit.Add(saleProfit)
		d.Transactions++

		h := &hourly[sale.CreatedAt.Hour()]
		h.Revenue = h.Revenue.Add(saleRevenue)
		h.Cost = h.Cost.Add(saleCost)
		h.Profit = h.Profit.Add(saleProfit)
		h.Transactions++
	}

	saleCount := len(sales)
	summary := dto.ProfitSummaryDTO{
		TotalRevenue:       totalRevenue,
		TotalCost:          totalCost,
		TotalProfit:        totalProfit,
		TotalItems:         totalItems,
		SaleCount:          saleCount,
		ProfitMargin:       pct(totalProfit, totalRevenue),
		CostRatio:          pct(totalCost, totalRevenue),
		AverageOrderProfit: safeDiv(totalProfit, decimal.NewFromInt(int64(saleCount))),
	}

	categories := make([]dto.CategoryProfitDTO, 0, len(byCategory))
	for _, c := range byCategory {
		c.Margin = pct(c.Profit, c.Revenue)
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Profit.Equal(categories[j].Profit) {
			return categories[i].Profit.GreaterThan(categories[j].Profit)
		}
		return categories[i].Category < categories[j].Category
	})
	if len(categories) > topCategories {
		categories = categories[:topCategories]
	}

	items := make([]dto.ItemProfitDTO, 0, len(byItem))
	for _, it := range byItem {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Profit.Equal(items[j].Profit) {
			return items[i].Profit.GreaterThan(items[j].Profit)
		}
		return items[i].ItemID < items[j].ItemID
	})
	if len(items) > topItems {
		items = items[:topItems]
	}

	daily := make([]dto.DailyProfitDTO, 0, len(byDay))
	for _, d := range byDay {
		daily = append(daily, *d)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	// Hora pico: mayor profit entre horas con al menos una transacción.
	// Empates los gana la hora más temprana (comparación estricta).
	var peak *dto.HourlyProfitDTO
	for h := range hourly {
		if hourly[h].Transactions == 0 {
			continue
		}
		if peak == nil || hourly[h].Profit.GreaterThan(peak.Profit) {
			p := hourly[h]
			peak = &p
		}
	}

	recent := make([]dto.RecentSaleDTO, 0, recentSaleCount)
	for _, sale := range sales {
		if len(recent) == recentSaleCount {
			break
		}
		profit := decimal.Zero
		for _, line := range sale.Items {
			if line.Item == nil {
				continue
			}
			qty := decimal.NewFromInt(int64(line.Quantity))
			profit = profit.Add(line.UnitPrice.Sub(line.Item.PurchasePrice).Mul(qty))
		}
		recent = append(recent, dto.RecentSaleDTO{
			ID:           sale.ID,
			CustomerName: sale.CustomerName,
			Total:        sale.Total,
			Profit:       profit,
			Margin:       pct(profit, sale.Total),
			CreatedAt:    sale.CreatedAt,
		})
	}

	return &dto.ProfitReportDTO{
		Timeframe: timeframe,
		Period:    dto.PeriodDTO{Start: start, End: end},
		Summary:   summary,
		Trends:    dto.ProfitTrendsDTO{Daily: daily, Hourly: hourly, PeakHour: peak},
		Breakdown: dto.ProfitBreakdownDTO{Categories: categories, Items: items},
		RecentSales: recent,
	}
}

// pct devuelve num/den*100 redondeado a 2 decimales, o 0 si den es 0.
func pct(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimal.NewFromInt(100)).Round(2)
}

// safeDiv devuelve num/den redondeado a 2 decimales, o 0 si den es 0.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Round(2)
}
