package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, shop_id, name, sku, category, purchase_price, selling_price,
		stock_quantity, min_stock_level, is_active, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ShopID, item.Name, item.SKU, item.Category,
		item.PurchasePrice, item.SellingPrice, item.StockQuantity, item.MinStockLevel,
		item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo de la tienda; nil si no existe.
func (r *ItemRepo) GetByID(id, shopID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND shop_id = $2`
	return r.scanOne(query, id, shopID)
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *ItemRepo) GetForUpdate(id, shopID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND shop_id = $2 FOR UPDATE`
	return r.scanOne(query, id, shopID)
}

// Update actualiza los campos editables. El stock se maneja con SetStock.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, sku = $3, category = $4, purchase_price = $5,
			selling_price = $6, min_stock_level = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.Category,
		item.PurchasePrice, item.SellingPrice, item.MinStockLevel, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// SetStock fija la cantidad absoluta del artículo.
func (r *ItemRepo) SetStock(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// ListByShop lista artículos activos de la tienda con paginación.
func (r *ItemRepo) ListByShop(shopID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items WHERE shop_id = $1 AND is_active = TRUE
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Deactivate desactiva el artículo (las ventas históricas lo siguen referenciando).
func (r *ItemRepo) Deactivate(id, shopID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET is_active = FALSE, updated_at = now() WHERE id = $1 AND shop_id = $2`,
		id, shopID,
	)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(query string, args ...any) (*entity.Item, error) {
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&i.ID, &i.ShopID, &i.Name, &i.SKU, &i.Category,
		&i.PurchasePrice, &i.SellingPrice, &i.StockQuantity, &i.MinStockLevel,
		&i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

func scanItem(rows pgx.Rows) (*entity.Item, error) {
	var i entity.Item
	if err := rows.Scan(
		&i.ID, &i.ShopID, &i.Name, &i.SKU, &i.Category,
		&i.PurchasePrice, &i.SellingPrice, &i.StockQuantity, &i.MinStockLevel,
		&i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &i, nil
}
