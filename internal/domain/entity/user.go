package entity

import "time"

// User representa un dueño de tienda. Cada usuario puede tener varias tiendas.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
