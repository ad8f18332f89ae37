package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// ShopUseCase casos de uso CRUD para tiendas. Borrar desactiva, nunca purga.
type ShopUseCase struct {
	repo repository.ShopRepository
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository) *ShopUseCase {
	return &ShopUseCase{repo: repo}
}

// Create crea una tienda para el usuario.
func (uc *ShopUseCase) Create(ownerID string, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	shop := &entity.Shop{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// GetByID obtiene una tienda del usuario. Inactiva o ajena = no encontrada.
func (uc *ShopUseCase) GetByID(ownerID, id string) (*dto.ShopResponse, error) {
	shop, err := uc.ownedShop(ownerID, id)
	if err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// List lista las tiendas activas del usuario.
func (uc *ShopUseCase) List(ownerID string) ([]dto.ShopResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	shops := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		if !s.IsActive {
			continue
		}
		shops = append(shops, *toShopResponse(s))
	}
	return shops, nil
}

// Update actualiza los campos editables de la tienda.
func (uc *ShopUseCase) Update(ownerID, id string, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := uc.ownedShop(ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		shop.Name = name
	}
	shop.UpdatedAt = time.Now()
	if err := uc.repo.Update(shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// Deactivate desactiva la tienda (soft delete). Sus datos quedan intactos.
func (uc *ShopUseCase) Deactivate(ownerID, id string) error {
	if _, err := uc.ownedShop(ownerID, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(id)
}

func (uc *ShopUseCase) ownedShop(ownerID, id string) (*entity.Shop, error) {
	shop, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil || !shop.IsActive {
		return nil, domain.ErrNotFound
	}
	if shop.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return shop, nil
}

func toShopResponse(s *entity.Shop) *dto.ShopResponse {
	if s == nil {
		return nil
	}
	return &dto.ShopResponse{
		ID:        s.ID,
		Name:      s.Name,
		OwnerID:   s.OwnerID,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
