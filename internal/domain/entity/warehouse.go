package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// A lo más una bodega por empresa puede estar marcada como principal (IsMain);
// al marcar una nueva principal se desmarcan las demás de la misma empresa.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	IsMain    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
