package entity

import "time"

// Company representa una empresa/tenant del sistema (multi-tenant, enfoque Chile).
// Toda entidad de inventario cuelga directa o transitivamente de una empresa.
type Company struct {
	ID        string
	Name      string
	RUT       string // RUT chileno, único en el sistema
	CreatedAt time.Time
	UpdatedAt time.Time
}
