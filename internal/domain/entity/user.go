package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin     = "admin"
	RoleChef      = "chef"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema (personal del restaurante).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, chef, bodeguero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
