package sales

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las ventas:
// si fn retorna error, todo (venta, líneas y stock) se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// ReceiptGenerator genera el PDF del recibo de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, shop *entity.Shop, sale *entity.Sale) ([]byte, error)
}
