package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
	"github.com/jhoicas/tienda-pos-api/pkg/logger"
)

// SaleUseCase registra, edita y elimina ventas de forma transaccional.
// Cada operación es una unidad atómica: validación de stock, escritura de
// venta + líneas y mutación de stock ocurren en una sola transacción con
// bloqueo de fila (SELECT FOR UPDATE) por artículo.
type SaleUseCase struct {
	txRunner TxRunner
	shopRepo repository.ShopRepository
	saleRepo repository.SaleRepository
	log      *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, shopRepo repository.ShopRepository, saleRepo repository.SaleRepository, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, shopRepo: shopRepo, saleRepo: saleRepo, log: log}
}

// Create registra una venta: valida líneas y descuento, descuenta stock por
// línea en el orden recibido y persiste venta + líneas. Cualquier fallo
// (p.ej. stock insuficiente en la línea K) revierte todos los descuentos
// previos y la venta parcial.
func (uc *SaleUseCase) Create(ctx context.Context, userID, shopID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	subtotal, err := validateSaleInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedShop(shopID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ShopID:        shopID,
		CustomerName:  in.CustomerName,
		PaymentMethod: in.PaymentMethod,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Total:         subtotal.Sub(in.Discount),
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		return applyLines(saleRepo, itemRepo, sale, in.Items)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("shop_id", shopID).
		Str("total", sale.Total.String()).Int("lines", len(sale.Items)).
		Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// Update reemplaza por completo las líneas de una venta: dentro de una sola
// transacción restaura el stock comprometido por las líneas originales,
// las elimina, vuelve a aplicar la lista nueva y actualiza la cabecera.
// Un fallo (p.ej. stock insuficiente para una cantidad nueva) deja la venta
// y el stock exactamente como estaban.
func (uc *SaleUseCase) Update(ctx context.Context, userID, shopID, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	subtotal, err := validateSaleInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedShop(shopID, userID); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository) error {
		// Bloquear la cabecera serializa ediciones y borrados de la misma
		// venta: las líneas que se restauran son las ya confirmadas, nunca
		// una lectura previa a otra edición concurrente.
		locked, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if locked == nil || locked.ShopID != shopID {
			return domain.ErrNotFound
		}
		existing, err := saleRepo.ListItems(saleID)
		if err != nil {
			return err
		}
		// Deshacer el compromiso original antes de aplicar el nuevo
		for _, line := range existing {
			if _, err := incrementStock(itemRepo, line.ItemID, shopID, line.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItemsBySale(saleID); err != nil {
			return err
		}

		locked.CustomerName = in.CustomerName
		locked.PaymentMethod = in.PaymentMethod
		locked.Subtotal = subtotal
		locked.Discount = in.Discount
		locked.Total = subtotal.Sub(in.Discount)
		locked.Items = nil

		if err := applyLines(saleRepo, itemRepo, locked, in.Items); err != nil {
			return err
		}
		if err := saleRepo.Update(locked); err != nil {
			return err
		}
		sale = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("shop_id", shopID).
		Str("total", sale.Total.String()).Msg("venta actualizada")
	return toSaleResponse(sale), nil
}

// Delete elimina una venta restaurando el stock de cada línea. Atómico:
// si algo falla, nada se borra y ningún stock se restaura.
func (uc *SaleUseCase) Delete(ctx context.Context, userID, shopID, saleID string) error {
	if _, err := uc.ownedShop(shopID, userID); err != nil {
		return err
	}

	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository) error {
		// Mismo bloqueo de cabecera que Update: si otra transacción ya borró
		// o está editando esta venta, aquí se espera o se reporta NotFound.
		locked, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if locked == nil || locked.ShopID != shopID {
			return domain.ErrNotFound
		}
		lines, err := saleRepo.ListItems(saleID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := incrementStock(itemRepo, line.ItemID, shopID, line.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItemsBySale(saleID); err != nil {
			return err
		}
		return saleRepo.Delete(saleID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("sale_id", saleID).Str("shop_id", shopID).Msg("venta eliminada")
	return nil
}

// GetByID devuelve una venta con líneas y datos de artículo.
func (uc *SaleUseCase) GetByID(userID, shopID, saleID string) (*dto.SaleResponse, error) {
	if _, err := uc.ownedShop(shopID, userID); err != nil {
		return nil, err
	}
	sale, err := uc.loadSale(saleID, shopID)
	if err != nil {
		return nil, err
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return toSaleResponse(sale), nil
}

// List pagina las ventas de la tienda, más recientes primero.
func (uc *SaleUseCase) List(userID, shopID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if _, err := uc.ownedShop(shopID, userID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.saleRepo.ListByShop(shopID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	sales := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		sales = append(sales, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Sales: sales,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// applyLines descuenta stock e inserta las líneas en el orden recibido.
// El subtotal de cada línea se recalcula aquí; la cabecera ya lo trae validado.
func applyLines(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository, sale *entity.Sale, lines []dto.SaleLineRequest) error {
	for _, ln := range lines {
		item, err := decrementStock(itemRepo, ln.ItemID, sale.ShopID, ln.Quantity)
		if err != nil {
			return err
		}
		si := entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ItemID:    item.ID,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
			Subtotal:  ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))),
			Item:      item,
		}
		if err := saleRepo.CreateItem(&si); err != nil {
			return err
		}
		sale.Items = append(sale.Items, si)
	}
	return nil
}

// validateSaleInput valida líneas, método de pago y descuento, y devuelve el
// subtotal. El descuento se rechaza en el servidor si es negativo o supera el
// subtotal: Total nunca queda negativo.
func validateSaleInput(in dto.CreateSaleRequest) (decimal.Decimal, error) {
	if len(in.Items) == 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	for _, ln := range in.Items {
		if ln.ItemID == "" || ln.Quantity <= 0 || ln.UnitPrice.IsNegative() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(subtotal) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return subtotal, nil
}

// ownedShop verifica que la tienda exista, esté activa y pertenezca al usuario.
// Las tiendas inactivas se reportan como no encontradas.
func (uc *SaleUseCase) ownedShop(shopID, userID string) (*entity.Shop, error) {
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
	return shop, nil
}

// loadSale carga la cabecera verificando que pertenezca a la tienda.
func (uc *SaleUseCase) loadSale(saleID, shopID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.ShopID != shopID {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, si := range s.Items {
		r := dto.SaleItemResponse{
			ID:        si.ID,
			ItemID:    si.ItemID,
			Quantity:  si.Quantity,
			UnitPrice: si.UnitPrice,
			Subtotal:  si.Subtotal,
		}
		if si.Item != nil {
			r.ItemName = si.Item.Name
			r.SKU = si.Item.SKU
			r.Category = si.Item.Category
		}
		items = append(items, r)
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		ShopID:        s.ShopID,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
