package repository

import "github.com/jhoicas/tienda-pos-api/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop.
// Las tiendas se desactivan, no se eliminan.
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	ListByOwner(ownerID string) ([]*entity.Shop, error)
	Update(shop *entity.Shop) error
	Deactivate(id string) error
}
