package repository

import "github.com/jhoicas/tienda-pos-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item.
// Siempre scoped a la tienda dueña. Usado con pool o dentro de transacciones.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id, shopID string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción: serializa los chequeos de stock
	// de ventas concurrentes sobre el mismo artículo.
	GetForUpdate(id, shopID string) (*entity.Item, error)
	Update(item *entity.Item) error
	// SetStock fija la cantidad absoluta del artículo.
	SetStock(id string, quantity int) error
	ListByShop(shopID string, limit, offset int) ([]*entity.Item, error)
	Deactivate(id, shopID string) error
}
