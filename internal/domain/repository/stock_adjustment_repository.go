package repository

import "github.com/jhoicas/tienda-pos-api/internal/domain/entity"

// StockAdjustmentRepository define el puerto para el historial de ajustes
// directos de stock.
type StockAdjustmentRepository interface {
	Create(adj *entity.StockAdjustment) error
	ListByItem(itemID string, limit int) ([]*entity.StockAdjustment, error)
}
