package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// ValidPaymentMethod indica si el método de pago es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta. Total = Subtotal - Discount;
// el descuento se valida en el servidor (0 <= Discount <= Subtotal).
type Sale struct {
	ID            string
	ShopID        string
	CustomerName  string
	PaymentMethod string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem representa una línea de venta. UnitPrice se captura al momento
// de la venta y es inmutable; no sigue al precio actual del artículo.
type SaleItem struct {
	ID        string
	SaleID    string
	ItemID    string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // UnitPrice * Quantity

	// Item es la referencia al artículo (join de lectura). Puede ser nil
	// en escrituras; las consultas de ventas lo traen poblado.
	Item *Item
}
