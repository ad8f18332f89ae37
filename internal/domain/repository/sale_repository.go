package repository

import (
	"time"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Las escrituras (Create/CreateItem/Update/Delete*) se usan dentro de la
// transacción que también muta el stock; una venta nunca es visible sin
// sus líneas ni con el stock a medio descontar.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	Update(sale *entity.Sale) error
	DeleteItemsBySale(saleID string) error
	Delete(id string) error

	// GetByID devuelve la cabecera; nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción: serializa ediciones y borrados
	// concurrentes de la misma venta.
	GetForUpdate(id string) (*entity.Sale, error)
	// ListItems devuelve las líneas con el artículo poblado (join).
	ListItems(saleID string) ([]entity.SaleItem, error)
	// ListByShop pagina ventas de la tienda, más recientes primero, con líneas.
	ListByShop(shopID string, limit, offset int) ([]*entity.Sale, error)
	// ListByShopAndPeriod trae las ventas del rango [start, end] con líneas
	// y artículos poblados, ordenadas descendente por fecha de creación.
	ListByShopAndPeriod(shopID string, start, end time.Time) ([]*entity.Sale, error)
}
