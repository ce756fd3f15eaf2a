package entity

import "time"

// Template define la estructura de specifications de un producto
// (nombre único por empresa).
type Template struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateAttribute asigna un atributo (global o custom) a un template,
// con orden de despliegue, obligatoriedad y valor por defecto opcional.
type TemplateAttribute struct {
	ID           string
	TemplateID   string
	Attribute    AttributeRef
	IsRequired   bool
	Order        int
	DefaultValue string // vacío = sin default
	IsActive     bool
	CreatedAt    time.Time
}
