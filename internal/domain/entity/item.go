package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo con precio y stock actuales.
// StockQuantity nunca es negativo: lo mutan solo las ventas (delta dentro
// de transacción) y los ajustes directos con motivo (StockAdjustment).
type Item struct {
	ID            string
	ShopID        string
	Name          string
	SKU           string
	Category      string
	PurchasePrice decimal.Decimal // costo de compra actual
	SellingPrice  decimal.Decimal // precio de venta actual
	StockQuantity int
	MinStockLevel int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el artículo está en o por debajo del nivel mínimo.
func (i *Item) IsLowStock() bool {
	return i.StockQuantity <= i.MinStockLevel
}
