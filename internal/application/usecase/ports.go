package usecase

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// AdjustmentTxRunner ejecuta un ajuste manual de stock dentro de una
// transacción de BD: el set de cantidad y su registro de auditoría se
// confirman o se revierten juntos. Nunca queda un cambio de stock sin
// su fila en stock_adjustments.
type AdjustmentTxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error
}
