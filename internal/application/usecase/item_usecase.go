package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos del catálogo.
// El stock solo cambia por ventas (transaccional) o por AdjustStock con motivo.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	shopRepo repository.ShopRepository
	adjRepo  repository.StockAdjustmentRepository
	txRunner AdjustmentTxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, shopRepo repository.ShopRepository, adjRepo repository.StockAdjustmentRepository, txRunner AdjustmentTxRunner) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, shopRepo: shopRepo, adjRepo: adjRepo, txRunner: txRunner}
}

// Create crea un artículo en la tienda del usuario.
func (uc *ItemUseCase) Create(userID, shopID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.PurchasePrice.IsNegative() ||
		in.SellingPrice.IsNegative() || in.StockQuantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		ShopID:        shopID,
		Name:          strings.TrimSpace(in.Name),
		SKU:           strings.ToUpper(strings.TrimSpace(in.SKU)),
		Category:      strings.TrimSpace(in.Category),
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		StockQuantity: in.StockQuantity,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return itemResponse(item), nil
}

// GetByID obtiene un artículo de la tienda del usuario.
func (uc *ItemUseCase) GetByID(userID, shopID, id string) (*dto.ItemResponse, error) {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(id, shopID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return itemResponse(item), nil
}

// List lista artículos de la tienda con paginación.
func (uc *ItemUseCase) List(userID, shopID string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.itemRepo.ListByShop(shopID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *itemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza campos editables. El stock no se toca aquí: usar AdjustStock.
func (uc *ItemUseCase) Update(userID, shopID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(id, shopID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.SKU != nil {
		item.SKU = strings.ToUpper(strings.TrimSpace(*in.SKU))
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.PurchasePrice = *in.PurchasePrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.SellingPrice = *in.SellingPrice
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStockLevel = *in.MinStockLevel
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return itemResponse(item), nil
}

// AdjustStock fija la cantidad absoluta del artículo. Todo cambio manual
// exige motivo y deja registro en stock_adjustments. Set y auditoría corren
// en una sola transacción con la fila del artículo bloqueada: la cantidad
// anterior registrada es la vigente, no una lectura vieja frente a una
// venta concurrente, y el stock nunca cambia sin su registro.
func (uc *ItemUseCase) AdjustStock(ctx context.Context, userID, shopID, id string, in dto.AdjustStockRequest) (*dto.ItemResponse, error) {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return nil, err
	}
	if in.Quantity < 0 || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.Item
	err := uc.txRunner.RunAdjustment(ctx, func(itemRepo repository.ItemRepository, adjRepo repository.StockAdjustmentRepository) error {
		item, err := itemRepo.GetForUpdate(id, shopID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		adj := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			ItemID:      id,
			ShopID:      shopID,
			OldQuantity: item.StockQuantity,
			NewQuantity: in.Quantity,
			Reason:      strings.TrimSpace(in.Reason),
			CreatedBy:   userID,
			CreatedAt:   time.Now(),
		}
		if err := itemRepo.SetStock(id, in.Quantity); err != nil {
			return err
		}
		if err := adjRepo.Create(adj); err != nil {
			return err
		}
		item.StockQuantity = in.Quantity
		item.UpdatedAt = adj.CreatedAt
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return itemResponse(out), nil
}

// ListAdjustments devuelve el historial de ajustes manuales del artículo.
func (uc *ItemUseCase) ListAdjustments(userID, shopID, id string, limit int) ([]dto.StockAdjustmentResponse, error) {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(id, shopID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.adjRepo.ListByItem(id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.StockAdjustmentResponse{
			ID:          a.ID,
			ItemID:      a.ItemID,
			OldQuantity: a.OldQuantity,
			NewQuantity: a.NewQuantity,
			Reason:      a.Reason,
			CreatedBy:   a.CreatedBy,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out, nil
}

// Deactivate desactiva el artículo; las ventas históricas lo siguen referenciando.
func (uc *ItemUseCase) Deactivate(userID, shopID, id string) error {
	if _, err := uc.ownedShop(userID, shopID); err != nil {
		return err
	}
	item, err := uc.itemRepo.GetByID(id, shopID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Deactivate(id, shopID)
}

func (uc *ItemUseCase) ownedShop(userID, shopID string) (*entity.Shop, error) {
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

func itemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            i.ID,
		ShopID:        i.ShopID,
		Name:          i.Name,
		SKU:           i.SKU,
		Category:      i.Category,
		PurchasePrice: i.PurchasePrice,
		SellingPrice:  i.SellingPrice,
		StockQuantity: i.StockQuantity,
		MinStockLevel: i.MinStockLevel,
		LowStock:      i.IsLowStock(),
		IsActive:      i.IsActive,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
