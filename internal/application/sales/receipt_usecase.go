package sales

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el PDF del recibo de una venta.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	shopRepo  repository.ShopRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, shopRepo repository.ShopRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, shopRepo: shopRepo, generator: generator}
}

// GenerateReceipt verifica propiedad, carga la venta con líneas y genera el PDF.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, userID, shopID, saleID string) ([]byte, error) {
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

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return uc.generator.GenerateReceiptPDF(ctx, shop, sale)
}
