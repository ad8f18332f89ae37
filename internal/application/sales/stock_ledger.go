package sales

import (
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// Accesor del libro de stock. Ambas operaciones bloquean la fila del artículo
// (SELECT FOR UPDATE) y deben ejecutarse dentro de la misma transacción que
// escribe la venta; así dos ventas concurrentes sobre el mismo artículo
// serializan su chequeo y nunca dejan el stock en negativo.

// decrementStock resta quantity del stock del artículo.
// Falla con ErrNotFound si el artículo no existe (o está inactivo) en la
// tienda, y con InsufficientStockError si quantity supera el disponible.
func decrementStock(itemRepo repository.ItemRepository, itemID, shopID string, quantity int) (*entity.Item, error) {
	item, err := itemRepo.GetForUpdate(itemID, shopID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive {
		return nil, domain.ErrNotFound
	}
	if item.StockQuantity < quantity {
		return nil, &domain.InsufficientStockError{
			ItemName:  item.Name,
			Requested: quantity,
			Available: item.StockQuantity,
		}
	}
	item.StockQuantity -= quantity
	if err := itemRepo.SetStock(item.ID, item.StockQuantity); err != nil {
		return nil, err
	}
	return item, nil
}

// incrementStock devuelve quantity al stock del artículo (edición o borrado
// de venta). Sin tope superior. El artículo puede estar inactivo: el stock
// de una venta revertida se restaura igual.
func incrementStock(itemRepo repository.ItemRepository, itemID, shopID string, quantity int) (*entity.Item, error) {
	item, err := itemRepo.GetForUpdate(itemID, shopID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.StockQuantity += quantity
	if err := itemRepo.SetStock(item.ID, item.StockQuantity); err != nil {
		return nil, err
	}
	return item, nil
}
