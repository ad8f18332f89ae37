package entity

import "time"

// Shop representa una tienda (tenant). Todos los artículos y ventas
// pertenecen a una tienda, y la tienda a un único dueño.
// Las tiendas eliminadas se desactivan (IsActive=false), nunca se borran.
type Shop struct {
	ID        string
	Name      string
	OwnerID   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si la tienda pertenece al usuario y está activa.
func (s *Shop) OwnedBy(userID string) bool {
	return s != nil && s.IsActive && s.OwnerID == userID
}
