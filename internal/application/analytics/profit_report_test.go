package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: artículos y ventas de prueba
// ──────────────────────────────────────────────────────────────────────────────

var (
	cafe = &entity.Item{
		ID: "item-cafe", Name: "Café 500g", Category: "bebidas",
		PurchasePrice: decimal.NewFromInt(50), SellingPrice: decimal.NewFromInt(80),
	}
	azucar = &entity.Item{
		ID: "item-azucar", Name: "Azúcar 1kg", Category: "",
		PurchasePrice: decimal.NewFromInt(20), SellingPrice: decimal.NewFromInt(35),
	}
)

func line(item *entity.Item, qty int, price int64) entity.SaleItem {
	p := decimal.NewFromInt(price)
	return entity.SaleItem{
		ItemID:    item.ID,
		Quantity:  qty,
		UnitPrice: p,
		Subtotal:  p.Mul(decimal.NewFromInt(int64(qty))),
		Item:      item,
	}
}

func sale(id string, at time.Time, lines ...entity.SaleItem) *entity.Sale {
	total := decimal.Zero
	for _, ln := range lines {
		total = total.Add(ln.Subtotal)
	}
	return &entity.Sale{ID: id, CreatedAt: at, Total: total, Items: lines}
}

func day(hour, min int) time.Time {
	return time.Date(2025, 3, 15, hour, min, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y márgenes
// ──────────────────────────────────────────────────────────────────────────────

// Caso trabajado:
//
//	Venta B 18:05  café x1 @80            → revenue  80, cost  50, profit 30
//	Venta A 09:15  café x2 @80 + azúcar x1 @35 → revenue 195, cost 120, profit 75
//	Venta C 08:00  legado sin líneas, total 500 → solo revenue
func TestBuildProfitReport_Totales(t *testing.T) {
	legacy := &entity.Sale{ID: "venta-c", CreatedAt: day(8, 0), Total: decimal.NewFromInt(500)}
	sales := []*entity.Sale{
		sale("venta-b", day(18, 5), line(cafe, 1, 80)),
		sale("venta-a", day(9, 15), line(cafe, 2, 80), line(azucar, 1, 35)),
		legacy,
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	assert.True(t, decimal.NewFromInt(775).Equal(r.Summary.TotalRevenue), "80+195+500")
	assert.True(t, decimal.NewFromInt(170).Equal(r.Summary.TotalCost), "el costo de la venta legada es desconocido, no se estima")
	assert.True(t, decimal.NewFromInt(105).Equal(r.Summary.TotalProfit))
	assert.Equal(t, 4, r.Summary.TotalItems)
	assert.Equal(t, 3, r.Summary.SaleCount)
	// 105/775*100 = 13.548... → 13.55
	assert.True(t, decimal.NewFromFloat(13.55).Equal(r.Summary.ProfitMargin), "margen = profit/revenue*100, redondeado a 2")
	// 170/775*100 = 21.935... → 21.94
	assert.True(t, decimal.NewFromFloat(21.94).Equal(r.Summary.CostRatio))
	// 105/3 = 35
	assert.True(t, decimal.NewFromInt(35).Equal(r.Summary.AverageOrderProfit))
}

func TestBuildProfitReport_BucketsPorCategoria(t *testing.T) {
	sales := []*entity.Sale{
		sale("venta-b", day(18, 5), line(cafe, 1, 80)),
		sale("venta-a", day(9, 15), line(cafe, 2, 80), line(azucar, 1, 35)),
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	require.Len(t, r.Breakdown.Categories, 2)
	// Ordenado por profit descendente: bebidas (90) antes que sin categoría (15)
	assert.Equal(t, "bebidas", r.Breakdown.Categories[0].Category)
	assert.True(t, decimal.NewFromInt(90).Equal(r.Breakdown.Categories[0].Profit))
	assert.Equal(t, 3, r.Breakdown.Categories[0].Items)

	assert.Equal(t, "sin categoría", r.Breakdown.Categories[1].Category,
		"las líneas sin categoría caen en el bucket por defecto")
	assert.True(t, decimal.NewFromInt(15).Equal(r.Breakdown.Categories[1].Profit))
}

func TestBuildProfitReport_BucketsPorArticulo(t *testing.T) {
	sales := []*entity.Sale{
		sale("venta-b", day(18, 5), line(cafe, 1, 80)),
		sale("venta-a", day(9, 15), line(cafe, 2, 80), line(azucar, 1, 35)),
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	require.Len(t, r.Breakdown.Items, 2)
	assert.Equal(t, "item-cafe", r.Breakdown.Items[0].ItemID)
	assert.Equal(t, 3, r.Breakdown.Items[0].QuantitySold, "las unidades del mismo artículo se acumulan entre ventas")
	assert.True(t, decimal.NewFromInt(90).Equal(r.Breakdown.Items[0].Profit))
}

// El top se corta en 10 artículos por profit descendente.
func TestBuildProfitReport_TopDiezArticulos(t *testing.T) {
	var lines []entity.SaleItem
	for i := 0; i < 15; i++ {
		it := &entity.Item{
			ID:            fmt.Sprintf("item-%02d", i),
			Name:          fmt.Sprintf("Artículo %02d", i),
			PurchasePrice: decimal.Zero,
		}
		// profit creciente con i: el top debe quedar con los de i más alto
		lines = append(lines, line(it, 1, int64(10+i)))
	}
	sales := []*entity.Sale{sale("venta-a", day(12, 0), lines...)}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	require.Len(t, r.Breakdown.Items, 10)
	assert.Equal(t, "item-14", r.Breakdown.Items[0].ItemID)
	assert.Equal(t, "item-05", r.Breakdown.Items[9].ItemID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tendencias: día, hora y hora pico
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildProfitReport_TendenciaDiariaYHoraria(t *testing.T) {
	legacy := &entity.Sale{ID: "venta-c", CreatedAt: day(8, 0), Total: decimal.NewFromInt(500)}
	sales := []*entity.Sale{
		sale("venta-b", day(18, 5), line(cafe, 1, 80)),
		sale("venta-a", day(9, 15), line(cafe, 2, 80), line(azucar, 1, 35)),
		legacy,
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	require.Len(t, r.Trends.Daily, 1, "las ventas legadas no generan bucket diario")
	assert.Equal(t, "2025-03-15", r.Trends.Daily[0].Date)
	assert.Equal(t, 2, r.Trends.Daily[0].Transactions)
	assert.True(t, decimal.NewFromInt(105).Equal(r.Trends.Daily[0].Profit))

	require.Len(t, r.Trends.Hourly, 24, "el eje horario siempre tiene 24 posiciones")
	assert.Equal(t, 1, r.Trends.Hourly[9].Transactions)
	assert.True(t, decimal.NewFromInt(75).Equal(r.Trends.Hourly[9].Profit))
	assert.Equal(t, 1, r.Trends.Hourly[18].Transactions)
	assert.Equal(t, 0, r.Trends.Hourly[12].Transactions)

	require.NotNil(t, r.Trends.PeakHour)
	assert.Equal(t, 9, r.Trends.PeakHour.Hour, "la hora con mayor profit gana")
}

// Empate de profit entre horas: gana la más temprana.
func TestBuildProfitReport_HoraPicoEmpate(t *testing.T) {
	sales := []*entity.Sale{
		sale("venta-b", day(15, 0), line(cafe, 1, 80)),
		sale("venta-a", day(10, 0), line(cafe, 1, 80)),
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	require.NotNil(t, r.Trends.PeakHour)
	assert.Equal(t, 10, r.Trends.PeakHour.Hour)
}

func TestBuildProfitReport_SinVentas(t *testing.T) {
	r := buildProfitReport("today", day(0, 0), day(23, 59), nil)

	assert.True(t, r.Summary.TotalRevenue.IsZero())
	assert.True(t, r.Summary.ProfitMargin.IsZero(), "sin revenue el margen es 0, no división por cero")
	assert.Empty(t, r.Trends.Daily)
	assert.Nil(t, r.Trends.PeakHour, "sin transacciones no hay hora pico")
	assert.Empty(t, r.RecentSales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas recientes
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildProfitReport_VentasRecientes(t *testing.T) {
	legacy := &entity.Sale{ID: "venta-c", CreatedAt: day(8, 0), Total: decimal.NewFromInt(500)}
	sales := []*entity.Sale{
		sale("venta-b", day(18, 5), line(cafe, 1, 80)),
		sale("venta-a", day(9, 15), line(cafe, 2, 80), line(azucar, 1, 35)),
		legacy,
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)

	require.Len(t, r.RecentSales, 3)
	assert.Equal(t, "venta-b", r.RecentSales[0].ID, "se respeta el orden descendente de entrada")
	assert.True(t, decimal.NewFromInt(30).Equal(r.RecentSales[0].Profit))
	// 30/80*100 = 37.5
	assert.True(t, decimal.NewFromFloat(37.5).Equal(r.RecentSales[0].Margin))

	// La venta legada reporta profit 0 y margen 0
	assert.Equal(t, "venta-c", r.RecentSales[2].ID)
	assert.True(t, r.RecentSales[2].Profit.IsZero())
	assert.True(t, r.RecentSales[2].Margin.IsZero())
}

func TestBuildProfitReport_RecientesSeCortanEnDiez(t *testing.T) {
	var sales []*entity.Sale
	for i := 0; i < 15; i++ {
		sales = append(sales, sale(fmt.Sprintf("venta-%02d", i), day(10, i), line(cafe, 1, 80)))
	}

	r := buildProfitReport("today", day(0, 0), day(23, 59), sales)
	assert.Len(t, r.RecentSales, 10)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers numéricos
// ──────────────────────────────────────────────────────────────────────────────

func TestPct(t *testing.T) {
	assert.True(t, pct(decimal.NewFromInt(1), decimal.Zero).IsZero(), "denominador cero devuelve 0")
	assert.True(t, decimal.NewFromInt(50).Equal(pct(decimal.NewFromInt(1), decimal.NewFromInt(2))))
	// 1/3*100 = 33.333... → 33.33
	assert.True(t, decimal.NewFromFloat(33.33).Equal(pct(decimal.NewFromInt(1), decimal.NewFromInt(3))))
}

func TestSafeDiv(t *testing.T) {
	assert.True(t, safeDiv(decimal.NewFromInt(1), decimal.Zero).IsZero())
	assert.True(t, decimal.NewFromFloat(0.33).Equal(safeDiv(decimal.NewFromInt(1), decimal.NewFromInt(3))))
}
