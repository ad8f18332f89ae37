package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type stubShopRepo struct {
	shop *entity.Shop
}

func (r *stubShopRepo) Create(*entity.Shop) error { return nil }
func (r *stubShopRepo) GetByID(id string) (*entity.Shop, error) {
	if r.shop != nil && r.shop.ID == id {
		return r.shop, nil
	}
	return nil, nil
}
func (r *stubShopRepo) ListByOwner(string) ([]*entity.Shop, error) { return nil, nil }
func (r *stubShopRepo) Update(*entity.Shop) error                  { return nil }
func (r *stubShopRepo) Deactivate(string) error                    { return nil }

type stubSaleRepo struct {
	recent []*entity.Sale
}

func (r *stubSaleRepo) Create(*entity.Sale) error                  { return nil }
func (r *stubSaleRepo) CreateItem(*entity.SaleItem) error          { return nil }
func (r *stubSaleRepo) Update(*entity.Sale) error                  { return nil }
func (r *stubSaleRepo) DeleteItemsBySale(string) error             { return nil }
func (r *stubSaleRepo) Delete(string) error                        { return nil }
func (r *stubSaleRepo) GetByID(string) (*entity.Sale, error)       { return nil, nil }
func (r *stubSaleRepo) GetForUpdate(string) (*entity.Sale, error)  { return nil, nil }
func (r *stubSaleRepo) ListItems(string) ([]entity.SaleItem, error) { return nil, nil }
func (r *stubSaleRepo) ListByShop(string, int, int) ([]*entity.Sale, error) {
	return r.recent, nil
}
func (r *stubSaleRepo) ListByShopAndPeriod(string, time.Time, time.Time) ([]*entity.Sale, error) {
	return nil, nil
}

// stubAnalyticsRepo devuelve valores fijos y cuenta las invocaciones para
// verificar que el fan-out realmente dispara todas las consultas.
type stubAnalyticsRepo struct {
	calls       map[string]int
	snapshotErr error
}

func newStubAnalyticsRepo() *stubAnalyticsRepo {
	return &stubAnalyticsRepo{calls: map[string]int{}}
}

func (r *stubAnalyticsRepo) GetSalesTotals(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, int, error) {
	r.calls["GetSalesTotals"]++
	return decimal.NewFromInt(100), 4, nil
}
func (r *stubAnalyticsRepo) GetProfitInPeriod(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	r.calls["GetProfitInPeriod"]++
	return decimal.NewFromInt(55), nil
}
func (r *stubAnalyticsRepo) GetInventorySnapshot(_ context.Context, _ string) (*repository.InventorySnapshot, error) {
	r.calls["GetInventorySnapshot"]++
	if r.snapshotErr != nil {
		return nil, r.snapshotErr
	}
	return &repository.InventorySnapshot{
		RetailValue:  decimal.NewFromInt(1000),
		CostValue:    decimal.NewFromInt(600),
		AverageStock: decimal.NewFromInt(20),
		ItemCount:    4,
	}, nil
}
func (r *stubAnalyticsRepo) GetLowStockCount(_ context.Context, _ string) (int, error) {
	r.calls["GetLowStockCount"]++
	return 1, nil
}
func (r *stubAnalyticsRepo) GetLowStockItems(_ context.Context, _ string, _ int) ([]*entity.Item, error) {
	r.calls["GetLowStockItems"]++
	return []*entity.Item{{ID: "item-1", Name: "Café 500g", StockQuantity: 2, MinStockLevel: 5}}, nil
}
func (r *stubAnalyticsRepo) GetTopSellingItems(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.TopItemResult, error) {
	r.calls["GetTopSellingItems"]++
	return []repository.TopItemResult{
		{ItemID: "item-1", Name: "Café 500g", SKU: "CAF-500", QuantitySold: 12, Revenue: decimal.NewFromInt(960)},
	}, nil
}
func (r *stubAnalyticsRepo) GetUnitsSold(_ context.Context, _ string, _, _ time.Time) (int64, error) {
	r.calls["GetUnitsSold"]++
	return 40, nil
}
func (r *stubAnalyticsRepo) GetDailySalesTrend(_ context.Context, _ string, _, _ time.Time) ([]repository.DailySalesPoint, error) {
	r.calls["GetDailySalesTrend"]++
	return []repository.DailySalesPoint{
		{Date: "2025-03-14", Total: decimal.NewFromInt(120), Count: 2},
		{Date: "2025-03-15", Total: decimal.NewFromInt(100), Count: 4},
	}, nil
}

// stubCache caché en memoria para verificar hit, miss y degradación.
type stubCache struct {
	stored map[string]any
	getErr error
	sets   int
}

func (c *stubCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.stored[key]
	if !ok {
		return false, nil
	}
	// Los tests guardan directamente el DTO, sin serialización JSON.
	*dest.(*dto.DashboardSummaryDTO) = *v.(*dto.DashboardSummaryDTO)
	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.stored == nil {
		c.stored = map[string]any{}
	}
	c.stored[key] = value
	c.sets++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

const (
	dashOwner = "owner-1"
	dashShop  = "shop-1"
)

func activeShop() *entity.Shop {
	return &entity.Shop{ID: dashShop, OwnerID: dashOwner, IsActive: true}
}

func TestDashboardGetSummary_ComponeTodosLosAgregados(t *testing.T) {
	repo := newStubAnalyticsRepo()
	uc := NewDashboardUseCase(
		&stubShopRepo{shop: activeShop()},
		&stubSaleRepo{recent: []*entity.Sale{{ID: "venta-1", ShopID: dashShop, Total: decimal.NewFromInt(80)}}},
		repo, nil, 0, logger.Nop(),
	)

	out, err := uc.GetSummary(context.Background(), dashOwner, dashShop)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1000).Equal(out.InventoryValue))
	assert.Equal(t, 4, out.ItemCount)
	assert.Equal(t, 1, out.LowStockCount)
	require.Len(t, out.LowStockItems, 1)
	assert.True(t, out.LowStockItems[0].LowStock)

	// margen del inventario: (1000-600)/1000*100 = 40
	assert.True(t, decimal.NewFromInt(40).Equal(out.InventoryMargin))
	// rotación: 40 unidades vendidas / stock promedio 20 = 2
	assert.True(t, decimal.NewFromInt(2).Equal(out.InventoryTurnover))
	// ticket promedio del mes móvil: 100/4 = 25
	assert.True(t, decimal.NewFromInt(25).Equal(out.AverageOrderValue))

	assert.True(t, decimal.NewFromInt(100).Equal(out.TodaySales))
	assert.Equal(t, 4, out.TodaySaleCount)
	assert.True(t, decimal.NewFromInt(55).Equal(out.TodayProfit))

	require.Len(t, out.TopSellers, 1)
	assert.Equal(t, int64(12), out.TopSellers[0].QuantitySold)
	require.Len(t, out.RecentSales, 1)
	assert.Equal(t, "venta-1", out.RecentSales[0].ID)
	assert.Len(t, out.SalesTrend, 2)
}

// Las cuatro goroutines deben disparar las 12 consultas, ninguna de más.
func TestDashboardGetSummary_DisparaTodasLasConsultas(t *testing.T) {
	repo := newStubAnalyticsRepo()
	uc := NewDashboardUseCase(&stubShopRepo{shop: activeShop()}, &stubSaleRepo{}, repo, nil, 0, logger.Nop())

	_, err := uc.GetSummary(context.Background(), dashOwner, dashShop)
	require.NoError(t, err)

	assert.Equal(t, 4, repo.calls["GetSalesTotals"], "hoy, mes, año y mes móvil")
	assert.Equal(t, 1, repo.calls["GetInventorySnapshot"])
	assert.Equal(t, 1, repo.calls["GetLowStockCount"])
	assert.Equal(t, 1, repo.calls["GetLowStockItems"])
	assert.Equal(t, 1, repo.calls["GetTopSellingItems"])
	assert.Equal(t, 1, repo.calls["GetUnitsSold"])
	assert.Equal(t, 1, repo.calls["GetDailySalesTrend"])
	assert.Equal(t, 1, repo.calls["GetProfitInPeriod"])
}

func TestDashboardGetSummary_PropagaErrorDeSubconsulta(t *testing.T) {
	repo := newStubAnalyticsRepo()
	repo.snapshotErr = errors.New("conexión perdida")
	uc := NewDashboardUseCase(&stubShopRepo{shop: activeShop()}, &stubSaleRepo{}, repo, nil, 0, logger.Nop())

	_, err := uc.GetSummary(context.Background(), dashOwner, dashShop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventario")
}

func TestDashboardGetSummary_Propiedad(t *testing.T) {
	uc := NewDashboardUseCase(&stubShopRepo{shop: activeShop()}, &stubSaleRepo{}, newStubAnalyticsRepo(), nil, 0, logger.Nop())

	_, err := uc.GetSummary(context.Background(), "otro-usuario", dashShop)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetSummary(context.Background(), dashOwner, "shop-inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboardGetSummary_CacheHitEvitaConsultas(t *testing.T) {
	repo := newStubAnalyticsRepo()
	cache := &stubCache{}
	uc := NewDashboardUseCase(&stubShopRepo{shop: activeShop()}, &stubSaleRepo{}, repo, cache, time.Minute, logger.Nop())

	first, err := uc.GetSummary(context.Background(), dashOwner, dashShop)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "el primer acceso cachea el resumen")

	callsAfterFirst := repo.calls["GetSalesTotals"]
	second, err := uc.GetSummary(context.Background(), dashOwner, dashShop)
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, repo.calls["GetSalesTotals"], "el hit de caché no vuelve a la DB")
	assert.Equal(t, first.ItemCount, second.ItemCount)
}

// Un caché caído no rompe el dashboard: se degrada a la DB.
func TestDashboardGetSummary_CacheCaidoDegradaADB(t *testing.T) {
	repo := newStubAnalyticsRepo()
	cache := &stubCache{getErr: errors.New("redis down")}
	uc := NewDashboardUseCase(&stubShopRepo{shop: activeShop()}, &stubSaleRepo{}, repo, cache, time.Minute, logger.Nop())

	out, err := uc.GetSummary(context.Background(), dashOwner, dashShop)
	require.NoError(t, err)
	assert.Equal(t, 4, out.ItemCount, "el resumen se calcula igual desde la DB")
}
