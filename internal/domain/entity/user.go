package entity

import "time"

// Roles de usuario dentro de una empresa.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa una cuenta que opera el inventario de una empresa.
// Es la cuenta actuante (account) registrada en cada StockMovement.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
