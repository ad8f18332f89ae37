package dto

import "time"

// CreateShopRequest alta de tienda.
type CreateShopRequest struct {
	Name string `json:"name"`
}

// UpdateShopRequest campos editables de la tienda.
type UpdateShopRequest struct {
	Name *string `json:"name"`
}

// ShopResponse tienda en respuestas.
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
