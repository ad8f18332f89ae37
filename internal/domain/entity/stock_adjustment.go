package entity

import "time"

// StockAdjustment registra un ajuste directo de stock (set absoluto).
// Todo cambio manual de cantidad exige un motivo; las ventas no pasan
// por aquí, mutan el stock dentro de su propia transacción.
type StockAdjustment struct {
	ID          string
	ItemID      string
	ShopID      string
	OldQuantity int
	NewQuantity int
	Reason      string
	CreatedBy   string // UserID
	CreatedAt   time.Time
}
