package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// ── Escrituras (dentro de la transacción de venta) ──────────────────────────

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, shop_id, customer_name, payment_method, subtotal, discount, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ShopID, sale.CustomerName, sale.PaymentMethod,
		sale.Subtotal, sale.Discount, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ItemID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// Update actualiza la cabecera de la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET customer_name = $2, payment_method = $3,
			subtotal = $4, discount = $5, total = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerName, sale.PaymentMethod,
		sale.Subtotal, sale.Discount, sale.Total,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// DeleteItemsBySale elimina todas las líneas de la venta.
func (r *SaleRepo) DeleteItemsBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de la venta.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ── Lecturas ────────────────────────────────────────────────────────────────

// GetByID obtiene la cabecera de una venta; nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, shop_id, customer_name, payment_method, subtotal, discount, total, created_at
		FROM sales WHERE id = $1`
	return r.scanHeader(query, id)
}

// GetForUpdate obtiene la cabecera bloqueando la fila. Solo dentro de una tx:
// la edición o el borrado de la misma venta desde otra transacción espera aquí.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `
		SELECT id, shop_id, customer_name, payment_method, subtotal, discount, total, created_at
		FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanHeader(query, id)
}

func (r *SaleRepo) scanHeader(query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ShopID, &s.CustomerName, &s.PaymentMethod,
		&s.Subtotal, &s.Discount, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListItems devuelve las líneas de la venta con el artículo poblado.
func (r *SaleRepo) ListItems(saleID string) ([]entity.SaleItem, error) {
	query := saleItemSelect + ` WHERE si.sale_id = $1 ORDER BY si.id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var lines []entity.SaleItem
	for rows.Next() {
		line, err := scanSaleItem(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ListByShop pagina las ventas de la tienda, más recientes primero, con líneas.
func (r *SaleRepo) ListByShop(shopID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, shop_id, customer_name, payment_method, subtotal, discount, total, created_at
		FROM sales WHERE shop_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listWithLines(query, shopID, limit, offset)
}

// ListByShopAndPeriod trae las ventas del rango [start, end] con líneas y
// artículos poblados, ordenadas descendente por fecha.
func (r *SaleRepo) ListByShopAndPeriod(shopID string, start, end time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, shop_id, customer_name, payment_method, subtotal, discount, total, created_at
		FROM sales WHERE shop_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at DESC`
	return r.listWithLines(query, shopID, start, end)
}

// listWithLines ejecuta la consulta de cabeceras y completa las líneas de
// todas las ventas en una sola consulta adicional (ANY sobre los IDs).
func (r *SaleRepo) listWithLines(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	byID := make(map[string]*entity.Sale)
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.ShopID, &s.CustomerName, &s.PaymentMethod,
			&s.Subtotal, &s.Discount, &s.Total, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
		byID[s.ID] = &s
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	lineQuery := saleItemSelect + ` WHERE si.sale_id = ANY($1) ORDER BY si.id`
	lineRows, err := r.q.Query(context.Background(), lineQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		line, err := scanSaleItem(lineRows)
		if err != nil {
			return nil, err
		}
		if sale, ok := byID[line.SaleID]; ok {
			sale.Items = append(sale.Items, line)
		}
	}
	return sales, lineRows.Err()
}

// saleItemSelect es el SELECT base de líneas con join al artículo. Los
// artículos se desactivan, nunca se borran, así que el join siempre resuelve.
const saleItemSelect = `
	SELECT si.id, si.sale_id, si.item_id, si.quantity, si.unit_price, si.subtotal,
		i.id, i.shop_id, i.name, i.sku, i.category, i.purchase_price, i.selling_price,
		i.stock_quantity, i.min_stock_level, i.is_active, i.created_at, i.updated_at
	FROM sale_items si
	JOIN items i ON i.id = si.item_id`

func scanSaleItem(rows pgx.Rows) (entity.SaleItem, error) {
	var line entity.SaleItem
	var item entity.Item
	err := rows.Scan(
		&line.ID, &line.SaleID, &line.ItemID, &line.Quantity, &line.UnitPrice, &line.Subtotal,
		&item.ID, &item.ShopID, &item.Name, &item.SKU, &item.Category,
		&item.PurchasePrice, &item.SellingPrice,
		&item.StockQuantity, &item.MinStockLevel, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return entity.SaleItem{}, fmt.Errorf("scan sale item: %w", err)
	}
	line.Item = &item
	return line, nil
}
